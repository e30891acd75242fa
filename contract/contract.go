//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"reflect"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName returns the type name of the worker, used in supervisor logs.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink receives the notifications addressed to one participant.
type EventSink interface {
	Consume(ctx context.Context, n event.Notification) error
}

// Notifier is the outbound port of the chat core.
// Implementations must not block: they are called from inside the
// serialized session store step.
type Notifier interface {
	Notify(to domain.Handle, n event.Notification)
}

type IRegistry interface {
	Notifier
	Register(h domain.Handle, sink EventSink)
	Unregister(h domain.Handle)
	Connected() int
}

// Classifier is the external content-safety boundary.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// Classification is the raw answer of an external classifier.
type Classification struct {
	Score float64
	Label string
}

type IncidentRecorder interface {
	Record(ctx context.Context, incident domain.Incident) error
}

// IIncidentSearcher answers admin queries over recorded incidents, newest first.
type IIncidentSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Incident, error)
}

type IIncidentRepository interface {
	Store(incident domain.Incident) error
	Get(id uuid.UUID) (domain.Incident, error)
	List(limit int) ([]domain.Incident, error)
}

type IKeywordRepository interface {
	List() ([]string, error)
	Add(phrases ...string) error
	// Remove refuses to delete the last stored phrase with ErrLastKeyword.
	Remove(phrase string) error
}

type IChatService interface {
	Connect(ctx context.Context, sink EventSink) (domain.Handle, error)
	Disconnect(ctx context.Context, h domain.Handle) error
	StartChat(ctx context.Context, h domain.Handle) error
	SendMessage(ctx context.Context, h domain.Handle, roomID domain.RoomID, text string) error
	EndChat(ctx context.Context, h domain.Handle, roomID domain.RoomID) error
	Stats(ctx context.Context) (domain.SessionStats, error)
}
