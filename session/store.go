// Package session owns the process-wide chat state: connected participants,
// the waiting queue and the active rooms.
//
// The state is only touched by the goroutine running Store.Run. Every other
// goroutine submits closures through Atomically and waits for them, which makes
// each submitted step linearizable with respect to all the others.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/errors"
)

var _ contract.Worker = (*Store)(nil)

type operation struct {
	fn   func(tx *Tx)
	done chan error
}

type Store struct {
	log        *slog.Logger
	operations chan operation
	state      *Tx
}

func NewStore(log *slog.Logger, bufferSize int) *Store {
	return &Store{
		log:        log,
		operations: make(chan operation, bufferSize),
		state:      newTx(),
	}
}

// Run serializes all operations until ctx is canceled.
// The state survives a restart of Run by the supervisor.
func (s *Store) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("Stopping session store")
			return ctx.Err()
		case op := <-s.operations:
			op.done <- s.apply(op.fn)
		}
	}
}

func (s *Store) apply(fn func(tx *Tx)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Session store operation panicked", "panic", r)
			err = fmt.Errorf("%w: %v", errors.ErrStoreOperation, r)
		}
	}()
	fn(s.state)
	return nil
}

// Atomically runs fn as one serialized step. fn must not block: no I/O, no
// waiting on channels that are not buffered and non-blocking.
func (s *Store) Atomically(ctx context.Context, fn func(tx *Tx)) error {
	op := operation{fn: fn, done: make(chan error, 1)}
	select {
	case s.operations <- op:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-op.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) Connect(ctx context.Context, h domain.Handle) error {
	return s.Atomically(ctx, func(tx *Tx) { tx.Connect(h) })
}

func (s *Store) Enqueue(ctx context.Context, h domain.Handle) (bool, error) {
	var ok bool
	err := s.Atomically(ctx, func(tx *Tx) { ok = tx.Enqueue(h) })
	return ok, err
}

func (s *Store) DequeueTwo(ctx context.Context) ([2]domain.Handle, bool, error) {
	var (
		pair [2]domain.Handle
		ok   bool
	)
	err := s.Atomically(ctx, func(tx *Tx) { pair, ok = tx.DequeueTwo() })
	return pair, ok, err
}

// CreateRoom refuses handles that are gone with ErrUnknownParticipant, and
// handles that are queued or already paired with ErrDuplicateEnqueue.
func (s *Store) CreateRoom(ctx context.Context, first, second domain.Handle) (domain.RoomID, error) {
	var (
		id      domain.RoomID
		ok      bool
		unknown bool
	)
	err := s.Atomically(ctx, func(tx *Tx) {
		if unknown = !tx.IsConnected(first) || !tx.IsConnected(second); unknown {
			return
		}
		id, ok = tx.CreateRoom(first, second)
	})
	switch {
	case err != nil:
		return "", err
	case unknown:
		return "", errors.ErrUnknownParticipant
	case !ok:
		return "", errors.ErrDuplicateEnqueue
	}
	return id, nil
}

func (s *Store) FindRoomOf(ctx context.Context, h domain.Handle) (domain.RoomID, bool, error) {
	var (
		id domain.RoomID
		ok bool
	)
	err := s.Atomically(ctx, func(tx *Tx) { id, ok = tx.FindRoomOf(h) })
	return id, ok, err
}

func (s *Store) Dissolve(ctx context.Context, id domain.RoomID) (bool, error) {
	var ok bool
	err := s.Atomically(ctx, func(tx *Tx) { _, ok = tx.Dissolve(id) })
	return ok, err
}

func (s *Store) RemoveFromQueue(ctx context.Context, h domain.Handle) (bool, error) {
	var ok bool
	err := s.Atomically(ctx, func(tx *Tx) { ok = tx.RemoveFromQueue(h) })
	return ok, err
}

func (s *Store) Stats(ctx context.Context) (domain.SessionStats, error) {
	var stats domain.SessionStats
	err := s.Atomically(ctx, func(tx *Tx) { stats = tx.Stats() })
	return stats, err
}
