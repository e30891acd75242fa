package server

import (
	"context"
	"log/slog"
	"mood-chat/infrastructure/grpc/safetypb"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Scorer is any model able to rate a message.
type Scorer interface {
	Score(text string) (float64, string)
}

type ClassifierServer struct {
	log    *slog.Logger
	scorer Scorer
}

func NewClassifierServer(log *slog.Logger, scorer Scorer) *ClassifierServer {
	return &ClassifierServer{log: log, scorer: scorer}
}

func (s *ClassifierServer) Classify(_ context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	text := in.GetValue()
	if strings.TrimSpace(text) == "" {
		return nil, status.Error(codes.InvalidArgument, "empty message")
	}
	score, label := s.scorer.Score(text)
	s.log.Debug("Message classified", "score", score, "label", label, "length", len(text))
	return safetypb.NewVerdict(score, label), nil
}
