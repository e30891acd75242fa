package errors

import "fmt"

var (
	// Contained per room or participant, never surfaced to a client.
	ErrStaleRoom             = fmt.Errorf("room no longer exists")
	ErrClassifierUnavailable = fmt.Errorf("classifier unavailable")
	ErrDuplicateEnqueue      = fmt.Errorf("participant already queued or in a room")
	ErrDoubleDissolve        = fmt.Errorf("room already dissolved")

	ErrStoreOperation          = fmt.Errorf("session store operation failed")
	ErrUnknownParticipant      = fmt.Errorf("participant is not connected")
	ErrMalformedClassification = fmt.Errorf("malformed classification")
	ErrWorkerPanic             = fmt.Errorf("worker panic")
	ErrEmptyWords              = fmt.Errorf("no words have been found")
	ErrInvalidFrame            = fmt.Errorf("invalid frame")
	ErrInvalidCredentials      = fmt.Errorf("invalid credentials")
	ErrTokenGeneration         = fmt.Errorf("token generation failed")
	ErrIncidentNotFound        = fmt.Errorf("incident not found")
	ErrSlowConsumer            = fmt.Errorf("outbound buffer full, notification dropped")
	ErrInvalidHash             = fmt.Errorf("invalid password hash format")
	ErrLastKeyword             = fmt.Errorf("the last keyword cannot be removed")
	ErrInvalidToken            = fmt.Errorf("invalid or expired token")
)
