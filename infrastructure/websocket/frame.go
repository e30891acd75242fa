// Package websocket carries the chat protocol over JSON websocket frames.
package websocket

import (
	"encoding/json"
	"fmt"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/errors"

	"github.com/go-playground/validator/v10"
)

type FrameType string

const (
	StartChatFrame   FrameType = "start_chat"
	SendMessageFrame FrameType = "send_message"
	EndChatFrame     FrameType = "end_chat"

	ChatStartedFrame          FrameType = "chat_started"
	MessageFrame              FrameType = "message"
	FlaggedFrame              FrameType = "flagged"
	StrangerDisconnectedFrame FrameType = "stranger_disconnected"
)

const MaxMessageLength = 2000

var validate = validator.New(validator.WithRequiredStructEnabled())

// InboundFrame is what a participant sends.
type InboundFrame struct {
	Type    FrameType `json:"type" validate:"required,oneof=start_chat send_message end_chat"`
	RoomID  string    `json:"room_id,omitempty" validate:"required_unless=Type start_chat"`
	Message string    `json:"message,omitempty" validate:"required_if=Type send_message,max=2000"`
}

// OutboundFrame is what a participant receives.
type OutboundFrame struct {
	Type   FrameType `json:"type"`
	RoomID string    `json:"room_id,omitempty"`
	Text   string    `json:"text,omitempty"`
	From   string    `json:"from,omitempty"`
}

// DecodeFrame parses and validates one inbound frame.
func DecodeFrame(data []byte) (InboundFrame, error) {
	var frame InboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return InboundFrame{}, fmt.Errorf("%w: %v", errors.ErrInvalidFrame, err)
	}
	if err := validate.Struct(frame); err != nil {
		return InboundFrame{}, fmt.Errorf("%w: %v", errors.ErrInvalidFrame, err)
	}
	return frame, nil
}

// EncodeNotification maps a core notification to its wire frame.
func EncodeNotification(n event.Notification) (OutboundFrame, bool) {
	switch n := n.(type) {
	case event.ChatStarted:
		return OutboundFrame{Type: ChatStartedFrame, RoomID: string(n.Room)}, true
	case event.SystemMessage:
		return OutboundFrame{Type: MessageFrame, RoomID: string(n.Room), Text: n.Text, From: string(domain.OriginSystem)}, true
	case event.MessageReceived:
		return OutboundFrame{Type: MessageFrame, Text: n.Text, From: string(n.Origin)}, true
	case event.Flagged:
		return OutboundFrame{Type: FlaggedFrame, Text: n.Text}, true
	case event.StrangerDisconnected:
		return OutboundFrame{Type: StrangerDisconnectedFrame}, true
	default:
		return OutboundFrame{}, false
	}
}
