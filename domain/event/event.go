// Package event defines the notifications the chat core emits towards
// connected participants.
package event

import "mood-chat/domain"

type Type string

const (
	ChatStartedType          Type = "chat_started"
	SystemMessageType        Type = "system_message"
	MessageReceivedType      Type = "message"
	FlaggedType              Type = "flagged"
	StrangerDisconnectedType Type = "stranger_disconnected"
)

const (
	ConnectedText = "You are now connected to a stranger!"
	FlaggedText   = "Your message was flagged as unsafe and not sent."
)

// Notification is anything pushed on a participant's outbound channel.
type Notification interface {
	Type() Type
}

type ChatStarted struct {
	Room domain.RoomID
}

func (ChatStarted) Type() Type { return ChatStartedType }

type SystemMessage struct {
	Room domain.RoomID
	Text string
}

func (SystemMessage) Type() Type { return SystemMessageType }

type MessageReceived struct {
	Text   string
	Origin domain.Origin
}

func (MessageReceived) Type() Type { return MessageReceivedType }

// Flagged is only ever delivered to the sender of the rejected message.
type Flagged struct {
	Text string
}

func (Flagged) Type() Type { return FlaggedType }

type StrangerDisconnected struct{}

func (StrangerDisconnected) Type() Type { return StrangerDisconnectedType }
