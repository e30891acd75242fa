// Package domain contains core concepts of the chat system.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "github.com/google/uuid"

// Handle is the opaque identifier of one connected endpoint.
// It is born on connect and dies on disconnect; identity lives elsewhere.
type Handle string

func NewHandle() Handle {
	return Handle(uuid.NewString())
}

func (h Handle) String() string {
	return string(h)
}

// Origin tags a relayed message from the point of view of its recipient.
type Origin string

const (
	OriginSelf     Origin = "you"
	OriginStranger Origin = "stranger"
	OriginSystem   Origin = "system"
)
