package main

import (
	"mood-chat/infrastructure/websocket"

	"github.com/gookit/color"
)

type renderer struct {
	colours bool
}

func (r renderer) paint(style color.Style, text string) string {
	if !r.colours {
		return text
	}
	return style.Render(text)
}

// Render turns a server frame into one terminal line; false means nothing to print.
func (r renderer) Render(frame websocket.OutboundFrame) (string, bool) {
	switch frame.Type {
	case websocket.ChatStartedFrame:
		return r.paint(color.New(color.FgYellow), "* Stranger found"), true
	case websocket.MessageFrame:
		switch frame.From {
		case "you":
			return r.paint(color.New(color.FgBlue, color.OpBold), "You: ") + frame.Text, true
		case "stranger":
			return r.paint(color.New(color.FgGreen, color.OpBold), "Stranger: ") + frame.Text, true
		default:
			return r.paint(color.New(color.FgYellow), "* "+frame.Text), true
		}
	case websocket.FlaggedFrame:
		return r.paint(color.New(color.FgRed), "! "+frame.Text), true
	case websocket.StrangerDisconnectedFrame:
		return r.paint(color.New(color.FgYellow), "* Stranger has disconnected. Type /next for a new one."), true
	default:
		return "", false
	}
}

func (r renderer) paintSystem(text string) string {
	return r.paint(color.New(color.FgYellow), text)
}
