package domain

import "github.com/google/uuid"

type RoomID string

func NewRoomID() RoomID {
	return RoomID(uuid.NewString())
}

// Room is an unordered pair of exactly two participants.
type Room struct {
	ID      RoomID
	Members [2]Handle
}

func NewRoom(id RoomID, first, second Handle) Room {
	return Room{ID: id, Members: [2]Handle{first, second}}
}

func (r Room) Has(h Handle) bool {
	return r.Members[0] == h || r.Members[1] == h
}

// Peer returns the other member of the room, false if h is not a member.
func (r Room) Peer(h Handle) (Handle, bool) {
	switch h {
	case r.Members[0]:
		return r.Members[1], true
	case r.Members[1]:
		return r.Members[0], true
	default:
		return "", false
	}
}
