package sink

import (
	"context"
	"mood-chat/domain/event"
	"mood-chat/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectionSink_Keeps_Order(t *testing.T) {
	req := require.New(t)
	s := NewConnectionSink(4)

	req.NoError(s.Consume(context.Background(), event.ChatStarted{Room: "R1"}))
	req.NoError(s.Consume(context.Background(), event.StrangerDisconnected{}))

	req.Equal(event.ChatStartedType, (<-s.Events).Type())
	req.Equal(event.StrangerDisconnectedType, (<-s.Events).Type())
}

func TestConnectionSink_Drops_When_Full(t *testing.T) {
	req := require.New(t)

	// Given a sink with a single slot already taken
	s := NewConnectionSink(1)
	req.NoError(s.Consume(context.Background(), event.Flagged{Text: event.FlaggedText}))

	// When another notification arrives
	err := s.Consume(context.Background(), event.StrangerDisconnected{})

	// Then it is dropped without blocking
	req.ErrorIs(err, errors.ErrSlowConsumer)
	req.Len(s.Events, 1)
}
