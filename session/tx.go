package session

import (
	"mood-chat/domain"

	"github.com/samber/lo"
)

// Tx is the session state as seen from inside one serialized step.
// It must never escape the closure given to Store.Atomically.
type Tx struct {
	connected  map[domain.Handle]struct{}
	queue      []domain.Handle
	queued     map[domain.Handle]struct{}
	rooms      map[domain.RoomID]domain.Room
	membership map[domain.Handle]domain.RoomID
}

func newTx() *Tx {
	return &Tx{
		connected:  make(map[domain.Handle]struct{}),
		queued:     make(map[domain.Handle]struct{}),
		rooms:      make(map[domain.RoomID]domain.Room),
		membership: make(map[domain.Handle]domain.RoomID),
	}
}

func (tx *Tx) Connect(h domain.Handle) {
	tx.connected[h] = struct{}{}
}

// Forget drops a handle from the connected set. Callers purge the queue and
// its room first.
func (tx *Tx) Forget(h domain.Handle) {
	delete(tx.connected, h)
}

func (tx *Tx) IsConnected(h domain.Handle) bool {
	_, ok := tx.connected[h]
	return ok
}

func (tx *Tx) IsQueued(h domain.Handle) bool {
	_, ok := tx.queued[h]
	return ok
}

// Enqueue appends h at the tail of the waiting queue.
// Returns false when h is unknown, already queued or already in a room.
func (tx *Tx) Enqueue(h domain.Handle) bool {
	if !tx.IsConnected(h) || tx.IsQueued(h) {
		return false
	}
	if _, ok := tx.membership[h]; ok {
		return false
	}
	tx.queue = append(tx.queue, h)
	tx.queued[h] = struct{}{}
	return true
}

// DequeueTwo pops the two longest-waiting handles, oldest first.
// The queue is left untouched when fewer than two are waiting.
func (tx *Tx) DequeueTwo() ([2]domain.Handle, bool) {
	if len(tx.queue) < 2 {
		return [2]domain.Handle{}, false
	}
	pair := [2]domain.Handle{tx.queue[0], tx.queue[1]}
	tx.queue = tx.queue[2:]
	delete(tx.queued, pair[0])
	delete(tx.queued, pair[1])
	return pair, true
}

func (tx *Tx) RemoveFromQueue(h domain.Handle) bool {
	if !tx.IsQueued(h) {
		return false
	}
	tx.queue = lo.Without(tx.queue, h)
	delete(tx.queued, h)
	return true
}

// CreateRoom pairs two free handles under a fresh room id.
func (tx *Tx) CreateRoom(first, second domain.Handle) (domain.RoomID, bool) {
	if first == second || !tx.isFree(first) || !tx.isFree(second) {
		return "", false
	}
	room := domain.NewRoom(domain.NewRoomID(), first, second)
	tx.rooms[room.ID] = room
	tx.membership[first] = room.ID
	tx.membership[second] = room.ID
	return room.ID, true
}

func (tx *Tx) isFree(h domain.Handle) bool {
	if !tx.IsConnected(h) || tx.IsQueued(h) {
		return false
	}
	_, inRoom := tx.membership[h]
	return !inRoom
}

func (tx *Tx) FindRoomOf(h domain.Handle) (domain.RoomID, bool) {
	id, ok := tx.membership[h]
	return id, ok
}

func (tx *Tx) Room(id domain.RoomID) (domain.Room, bool) {
	room, ok := tx.rooms[id]
	return room, ok
}

// Dissolve removes the room and the membership of both members.
// A second call for the same id is a no-op returning false.
func (tx *Tx) Dissolve(id domain.RoomID) (domain.Room, bool) {
	room, ok := tx.rooms[id]
	if !ok {
		return domain.Room{}, false
	}
	delete(tx.rooms, id)
	for _, member := range room.Members {
		if tx.membership[member] == id {
			delete(tx.membership, member)
		}
	}
	return room, true
}

func (tx *Tx) Stats() domain.SessionStats {
	return domain.SessionStats{
		Queued:    len(tx.queue),
		Rooms:     len(tx.rooms),
		Connected: len(tx.connected),
	}
}

// Queue returns a copy of the waiting queue in arrival order.
func (tx *Tx) Queue() []domain.Handle {
	return append([]domain.Handle(nil), tx.queue...)
}
