package runtime

import (
	"context"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/domain/event"
	"sync"
)

var _ contract.IRegistry = (*Registry)(nil)

// Registry maps each connected participant to its outbound sink.
// It is the Notifier used by the chat core.
type Registry struct {
	mu       sync.RWMutex
	log      *slog.Logger
	sessions map[domain.Handle]contract.EventSink
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:      log,
		sessions: make(map[domain.Handle]contract.EventSink),
	}
}

func (r *Registry) Register(h domain.Handle, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[h] = sink
}

// Unregister is safe to call for a handle that was never registered.
func (r *Registry) Unregister(h domain.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, h)
}

func (r *Registry) Connected() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Notify hands n to the sink of h. It never waits on the consumer: a missing
// or saturated sink loses the notification.
func (r *Registry) Notify(to domain.Handle, n event.Notification) {
	r.mu.RLock()
	sink, ok := r.sessions[to]
	r.mu.RUnlock()
	if !ok {
		r.log.Debug("No sink for participant, notification dropped", "handle", to, "type", n.Type())
		return
	}
	if err := sink.Consume(context.Background(), n); err != nil {
		r.log.Warn("Notification not delivered", "handle", to, "type", n.Type(), "error", err)
	}
}
