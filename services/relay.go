package services

import (
	"context"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/errors"
	"mood-chat/moderation"
	"mood-chat/observability"
	"mood-chat/session"
	"time"

	"github.com/google/uuid"
)

// Relay moves an admitted message from one member of a room to the other.
type Relay struct {
	log      *slog.Logger
	store    *session.Store
	notifier contract.Notifier
	gate     *moderation.Gate
	recorder contract.IncidentRecorder
	metrics  *observability.Metrics
}

func NewRelay(log *slog.Logger, store *session.Store, notifier contract.Notifier, gate *moderation.Gate,
	recorder contract.IncidentRecorder, metrics *observability.Metrics) *Relay {
	return &Relay{log: log, store: store, notifier: notifier, gate: gate, recorder: recorder, metrics: metrics}
}

// Relay is a silent no-op when the room is gone or sender is not a member.
// Membership is checked again after classification, the room may have been
// dissolved while the classifier was answering.
func (r *Relay) Relay(ctx context.Context, roomID domain.RoomID, sender domain.Handle, text string) error {
	member, err := r.isMember(ctx, roomID, sender)
	if err != nil {
		return err
	}
	if !member {
		r.log.Debug("Message dropped", "room", roomID, "handle", sender, "reason", errors.ErrStaleRoom)
		return nil
	}

	decision := r.gate.Classify(ctx, text)

	var stale bool
	err = r.store.Atomically(ctx, func(tx *session.Tx) {
		room, ok := tx.Room(roomID)
		if !ok || !room.Has(sender) {
			stale = true
			return
		}
		if decision.Verdict == domain.Unsafe {
			r.notifier.Notify(sender, event.Flagged{Text: event.FlaggedText})
			return
		}
		peer, _ := room.Peer(sender)
		r.notifier.Notify(peer, event.MessageReceived{Text: text, Origin: domain.OriginStranger})
		r.notifier.Notify(sender, event.MessageReceived{Text: text, Origin: domain.OriginSelf})
	})
	if err != nil {
		return err
	}

	if decision.Escalated {
		r.metrics.ObserveClassifier(decision.Latency)
		r.record(ctx, roomID, sender, decision)
	}
	switch {
	case stale:
		r.log.Debug("Message dropped after classification", "room", roomID, "reason", errors.ErrStaleRoom)
	case decision.Verdict == domain.Unsafe:
		r.metrics.FlaggedTotal.WithLabelValues(string(decision.Outcome)).Inc()
	default:
		r.metrics.RelayedTotal.Inc()
	}
	return nil
}

func (r *Relay) isMember(ctx context.Context, roomID domain.RoomID, h domain.Handle) (bool, error) {
	var member bool
	err := r.store.Atomically(ctx, func(tx *session.Tx) {
		room, ok := tx.Room(roomID)
		member = ok && room.Has(h)
	})
	return member, err
}

// record is best-effort: a failing ledger never blocks a conversation.
func (r *Relay) record(ctx context.Context, roomID domain.RoomID, h domain.Handle, d moderation.Decision) {
	if r.recorder == nil {
		return
	}
	incident := domain.Incident{
		ID:       uuid.New(),
		Room:     roomID,
		Handle:   h,
		Keywords: d.Keywords,
		Lang:     d.Lang,
		Outcome:  d.Outcome,
		Score:    d.Score,
		At:       time.Now().UTC(),
	}
	if err := r.recorder.Record(ctx, incident); err != nil {
		r.log.Error("Unable to record incident", "room", roomID, "error", err)
	}
}
