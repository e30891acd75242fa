package domain

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	// OutcomeUnsafe the external classifier confirmed the keyword hit.
	OutcomeUnsafe Outcome = "unsafe"
	// OutcomeUnavailable the classifier failed and the gate closed.
	OutcomeUnavailable Outcome = "unavailable"
	// OutcomeCleared the classifier overruled the keyword hit.
	OutcomeCleared Outcome = "cleared"
)

// Incident is the moderation trace of an escalated message.
// The message text itself is never part of it.
type Incident struct {
	ID       uuid.UUID
	Room     RoomID
	Handle   Handle
	Keywords []string
	Lang     string
	Outcome  Outcome
	Score    float64
	At       time.Time
}
