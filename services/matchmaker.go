package services

import (
	"context"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/errors"
	"mood-chat/observability"
	"mood-chat/session"
)

// Matchmaker pairs waiting participants two by two, oldest first.
type Matchmaker struct {
	log      *slog.Logger
	store    *session.Store
	notifier contract.Notifier
	metrics  *observability.Metrics
}

func NewMatchmaker(log *slog.Logger, store *session.Store, notifier contract.Notifier,
	metrics *observability.Metrics) *Matchmaker {
	return &Matchmaker{log: log, store: store, notifier: notifier, metrics: metrics}
}

// StartChat queues h and forms a room as soon as two participants wait.
// A participant already queued or in a room is left untouched.
func (m *Matchmaker) StartChat(ctx context.Context, h domain.Handle) error {
	var (
		connected bool
		enqueued  bool
		room      domain.Room
		paired    bool
	)
	err := m.store.Atomically(ctx, func(tx *session.Tx) {
		if connected = tx.IsConnected(h); !connected {
			return
		}
		if enqueued = tx.Enqueue(h); !enqueued {
			return
		}
		pair, ok := tx.DequeueTwo()
		if !ok {
			return
		}
		id, ok := tx.CreateRoom(pair[0], pair[1])
		if !ok {
			return
		}
		room, paired = tx.Room(id)
		for _, member := range room.Members {
			m.notifier.Notify(member, event.ChatStarted{Room: room.ID})
		}
		for _, member := range room.Members {
			m.notifier.Notify(member, event.SystemMessage{Room: room.ID, Text: event.ConnectedText})
		}
	})
	if err != nil {
		return err
	}

	switch {
	case !connected:
		m.log.Debug("Start chat ignored", "handle", h, "reason", errors.ErrUnknownParticipant)
	case !enqueued:
		m.log.Debug("Start chat ignored", "handle", h, "reason", errors.ErrDuplicateEnqueue)
	case paired:
		m.metrics.MatchesTotal.Inc()
		m.log.Info("Room created", "room", room.ID)
	default:
		m.log.Debug("Participant waiting for a stranger", "handle", h)
	}
	return nil
}
