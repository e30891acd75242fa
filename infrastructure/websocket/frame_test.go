package websocket

import (
	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeFrame(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		want  InboundFrame
		valid bool
	}{
		{"Start chat", `{"type":"start_chat"}`, InboundFrame{Type: StartChatFrame}, true},
		{"Send message", `{"type":"send_message","room_id":"r1","message":"hi"}`,
			InboundFrame{Type: SendMessageFrame, RoomID: "r1", Message: "hi"}, true},
		{"End chat", `{"type":"end_chat","room_id":"r1"}`, InboundFrame{Type: EndChatFrame, RoomID: "r1"}, true},
		{"Unknown type", `{"type":"dance"}`, InboundFrame{}, false},
		{"Missing room", `{"type":"send_message","message":"hi"}`, InboundFrame{}, false},
		{"Empty message", `{"type":"send_message","room_id":"r1","message":""}`, InboundFrame{}, false},
		{"End chat without room", `{"type":"end_chat"}`, InboundFrame{}, false},
		{"Not json", `start_chat`, InboundFrame{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			frame, err := DecodeFrame([]byte(tt.data))
			if !tt.valid {
				req.ErrorIs(err, errors.ErrInvalidFrame)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, frame)
		})
	}
}

func TestDecodeFrame_Message_Length_Counts_Runes(t *testing.T) {
	req := require.New(t)

	_, err := DecodeFrame([]byte(`{"type":"send_message","room_id":"r","message":"` + strings.Repeat("é", MaxMessageLength) + `"}`))
	req.NoError(err)

	_, err = DecodeFrame([]byte(`{"type":"send_message","room_id":"r","message":"` + strings.Repeat("a", MaxMessageLength+1) + `"}`))
	req.ErrorIs(err, errors.ErrInvalidFrame)
}

func TestEncodeNotification(t *testing.T) {
	tests := []struct {
		name         string
		notification event.Notification
		want         OutboundFrame
	}{
		{"Chat started", event.ChatStarted{Room: "r1"}, OutboundFrame{Type: ChatStartedFrame, RoomID: "r1"}},
		{"System message", event.SystemMessage{Room: "r1", Text: event.ConnectedText},
			OutboundFrame{Type: MessageFrame, RoomID: "r1", Text: event.ConnectedText, From: "system"}},
		{"Own message", event.MessageReceived{Text: "hi", Origin: domain.OriginSelf},
			OutboundFrame{Type: MessageFrame, Text: "hi", From: "you"}},
		{"Stranger message", event.MessageReceived{Text: "hi", Origin: domain.OriginStranger},
			OutboundFrame{Type: MessageFrame, Text: "hi", From: "stranger"}},
		{"Flagged", event.Flagged{Text: event.FlaggedText}, OutboundFrame{Type: FlaggedFrame, Text: event.FlaggedText}},
		{"Stranger disconnected", event.StrangerDisconnected{}, OutboundFrame{Type: StrangerDisconnectedFrame}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, ok := EncodeNotification(tt.notification)
			require.True(t, ok)
			require.Equal(t, tt.want, frame)
		})
	}
}
