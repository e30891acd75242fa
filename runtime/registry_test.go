package runtime

import (
	"context"
	"log/slog"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/errors"
	"mood-chat/mocks"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegistry_Register_And_Notify(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registry := NewRegistry(slog.Default())
	handle := domain.NewHandle()
	sink := mocks.NewMockEventSink(ctrl)

	// Given no participant is connected
	req.Zero(registry.Connected())

	// When a participant registers its sink
	registry.Register(handle, sink)

	// Then notifications addressed to it reach the sink
	sink.EXPECT().Consume(gomock.Any(), event.ChatStarted{Room: "R1"}).Return(nil)
	registry.Notify(handle, event.ChatStarted{Room: "R1"})
	req.Equal(1, registry.Connected())
}

func TestRegistry_Notify_Unknown_Handle_Is_Dropped(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registry := NewRegistry(slog.Default())
	sink := mocks.NewMockEventSink(ctrl)

	// Given a participant that has left
	handle := domain.NewHandle()
	registry.Register(handle, sink)
	registry.Unregister(handle)

	// Then its sink is never called again
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).Times(0)
	registry.Notify(handle, event.StrangerDisconnected{})
	req.Zero(registry.Connected())

	// And unregistering twice is harmless
	registry.Unregister(handle)
}

func TestRegistry_Notify_Survives_Slow_Consumer(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewRegistry(slog.Default())
	sink := mocks.NewMockEventSink(ctrl)
	handle := domain.NewHandle()
	registry.Register(handle, sink)

	sink.EXPECT().
		Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ event.Notification) error {
			return errors.ErrSlowConsumer
		})

	// Then Notify returns without surfacing the error
	registry.Notify(handle, event.Flagged{Text: event.FlaggedText})
}
