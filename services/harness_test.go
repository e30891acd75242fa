package services

import (
	"context"
	"log/slog"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/mocks"
	"mood-chat/moderation"
	"mood-chat/observability"
	"mood-chat/runtime"
	"mood-chat/session"
	"mood-chat/sink"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type harness struct {
	service    *ChatService
	store      *session.Store
	classifier *mocks.MockClassifier
	recorder   *mocks.MockIncidentRecorder
	metrics    *observability.Metrics
}

func newHarness(t *testing.T) *harness {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	classifier := mocks.NewMockClassifier(ctrl)
	recorder := mocks.NewMockIncidentRecorder(ctrl)
	metrics := observability.NewMetrics()

	store := session.NewStore(log, 64)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = store.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	matcher, err := moderation.NewKeywordMatcher([]string{
		"kill myself", "end my life", "hurt myself", "self harm", "suicide",
		"cut myself", "want to die", "no reason to live", "take my life",
	})
	require.NoError(t, err)
	gate := moderation.NewGate(log, matcher, classifier, 50*time.Millisecond, moderation.DefaultUnsafeThreshold)

	registry := runtime.NewRegistry(log)
	service := NewChatService(log, store, registry,
		NewMatchmaker(log, store, registry, metrics),
		NewRelay(log, store, registry, gate, recorder, metrics),
		NewLifecycle(log, store, registry),
	)
	return &harness{service: service, store: store, classifier: classifier, recorder: recorder, metrics: metrics}
}

func (h *harness) connect(t *testing.T) (domain.Handle, *sink.ConnectionSink) {
	s := sink.NewConnectionSink(32)
	handle, err := h.service.Connect(context.Background(), s)
	require.NoError(t, err)
	return handle, s
}

// drain returns everything already delivered to s without waiting.
func drain(s *sink.ConnectionSink) []event.Notification {
	var out []event.Notification
	for {
		select {
		case n := <-s.Events:
			out = append(out, n)
		default:
			return out
		}
	}
}

func count(notifications []event.Notification, typ event.Type) int {
	n := 0
	for _, notification := range notifications {
		if notification.Type() == typ {
			n++
		}
	}
	return n
}

func roomOf(notifications []event.Notification) domain.RoomID {
	for _, n := range notifications {
		if started, ok := n.(event.ChatStarted); ok {
			return started.Room
		}
	}
	return ""
}
