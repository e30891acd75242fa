package services

import (
	"context"
	"log/slog"
	"mood-chat/contract"
	"mood-chat/domain"
	"mood-chat/session"
)

var _ contract.IChatService = (*ChatService)(nil)

// ChatService is the entry point of the connection layer: one method per inbound event.
type ChatService struct {
	log        *slog.Logger
	store      *session.Store
	registry   contract.IRegistry
	matchmaker *Matchmaker
	relay      *Relay
	lifecycle  *Lifecycle
}

func NewChatService(
	log *slog.Logger,
	store *session.Store,
	registry contract.IRegistry,
	matchmaker *Matchmaker,
	relay *Relay,
	lifecycle *Lifecycle,
) *ChatService {
	return &ChatService{
		log:        log,
		store:      store,
		registry:   registry,
		matchmaker: matchmaker,
		relay:      relay,
		lifecycle:  lifecycle,
	}
}

// Connect issues a fresh handle bound to sink.
func (s *ChatService) Connect(ctx context.Context, sink contract.EventSink) (domain.Handle, error) {
	h := domain.NewHandle()
	s.registry.Register(h, sink)
	if err := s.store.Connect(ctx, h); err != nil {
		s.registry.Unregister(h)
		return "", err
	}
	s.log.Debug("Participant connected", "handle", h)
	return h, nil
}

// Disconnect is always processed, even while a message of h is being classified.
func (s *ChatService) Disconnect(ctx context.Context, h domain.Handle) error {
	defer s.registry.Unregister(h)
	if err := s.lifecycle.Disconnect(ctx, h); err != nil {
		return err
	}
	s.log.Debug("Participant disconnected", "handle", h)
	return nil
}

func (s *ChatService) StartChat(ctx context.Context, h domain.Handle) error {
	return s.matchmaker.StartChat(ctx, h)
}

func (s *ChatService) SendMessage(ctx context.Context, h domain.Handle, roomID domain.RoomID, text string) error {
	return s.relay.Relay(ctx, roomID, h, text)
}

func (s *ChatService) EndChat(ctx context.Context, h domain.Handle, roomID domain.RoomID) error {
	return s.lifecycle.EndChat(ctx, h, roomID)
}

func (s *ChatService) Stats(ctx context.Context) (domain.SessionStats, error) {
	return s.store.Stats(ctx)
}
