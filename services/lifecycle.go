package services

import (
	"context"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"mood-chat/errors"
	"mood-chat/session"
)

// Lifecycle tears rooms down. The survivor is told once and never re-queued.
type Lifecycle struct {
	log      *slog.Logger
	store    *session.Store
	notifier contract.Notifier
}

func NewLifecycle(log *slog.Logger, store *session.Store, notifier contract.Notifier) *Lifecycle {
	return &Lifecycle{log: log, store: store, notifier: notifier}
}

// Disconnect purges h from the queue or from its room, then forgets it.
func (l *Lifecycle) Disconnect(ctx context.Context, h domain.Handle) error {
	var (
		dequeued  bool
		dissolved domain.Room
		found     bool
	)
	err := l.store.Atomically(ctx, func(tx *session.Tx) {
		dequeued = tx.RemoveFromQueue(h)
		if id, ok := tx.FindRoomOf(h); ok {
			dissolved, found = l.dissolve(tx, id, h)
		}
		tx.Forget(h)
	})
	if err != nil {
		return err
	}
	switch {
	case found:
		l.log.Info("Room dissolved on disconnect", "room", dissolved.ID)
	case dequeued:
		l.log.Debug("Participant left the queue", "handle", h)
	}
	return nil
}

// EndChat dissolves roomID on behalf of h. Unknown rooms and non-members are ignored.
func (l *Lifecycle) EndChat(ctx context.Context, h domain.Handle, roomID domain.RoomID) error {
	var found bool
	err := l.store.Atomically(ctx, func(tx *session.Tx) {
		room, ok := tx.Room(roomID)
		if !ok || !room.Has(h) {
			return
		}
		_, found = l.dissolve(tx, roomID, h)
	})
	if err != nil {
		return err
	}
	if !found {
		l.log.Debug("End chat ignored", "room", roomID, "handle", h, "reason", errors.ErrStaleRoom)
		return nil
	}
	l.log.Info("Room ended", "room", roomID)
	return nil
}

// dissolve must run inside a store step. Only the caller that actually
// removes the room notifies the peer.
func (l *Lifecycle) dissolve(tx *session.Tx, id domain.RoomID, initiator domain.Handle) (domain.Room, bool) {
	room, ok := tx.Dissolve(id)
	if !ok {
		l.log.Debug("Dissolve ignored", "room", id, "reason", errors.ErrDoubleDissolve)
		return domain.Room{}, false
	}
	if peer, ok := room.Peer(initiator); ok {
		l.notifier.Notify(peer, event.StrangerDisconnected{})
	}
	return room, true
}
