package sink

import (
	"context"
	"mood-chat/contract"
	"mood-chat/domain/event"
	"mood-chat/errors"
)

var _ contract.EventSink = (*ConnectionSink)(nil)

// ConnectionSink is the outbound channel of one participant.
// The transport drains Events; the core only ever pushes without waiting.
type ConnectionSink struct {
	Events chan event.Notification
}

func NewConnectionSink(bufferSize int) *ConnectionSink {
	return &ConnectionSink{Events: make(chan event.Notification, bufferSize)}
}

// Consume is called by the registry from inside a session store step.
// A full buffer means the connection cannot keep up: the notification is dropped.
func (s *ConnectionSink) Consume(ctx context.Context, n event.Notification) error {
	select {
	case s.Events <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.ErrSlowConsumer
	}
}
