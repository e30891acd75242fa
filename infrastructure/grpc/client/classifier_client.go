package client

import (
	"context"
	"fmt"
	"mood-chat/auth"
	"mood-chat/contract"
	"mood-chat/errors"
	"mood-chat/infrastructure/grpc/safetypb"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ contract.Classifier = (*ClassifierClient)(nil)

// ClassifierClient is the chat server side of the SafetyClassifier boundary.
type ClassifierClient struct {
	client safetypb.SafetyClassifierClient
}

func NewClassifierClient(cc grpc.ClientConnInterface) *ClassifierClient {
	return &ClassifierClient{client: safetypb.NewSafetyClassifierClient(cc)}
}

// Dial connects lazily: an unreachable sidecar only shows up as failed calls,
// which the gate turns into unsafe verdicts.
func Dial(target, token string) (*grpc.ClientConn, error) {
	options := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if token != "" {
		options = append(options, grpc.WithPerRPCCredentials(auth.BearerCredentials{Token: token, Insecure: true}))
	}
	return grpc.NewClient(target, options...)
}

func (c *ClassifierClient) Classify(ctx context.Context, text string) (contract.Classification, error) {
	response, err := c.client.Classify(ctx, wrapperspb.String(text))
	if err != nil {
		return contract.Classification{}, err
	}
	score, label, err := safetypb.ParseVerdict(response)
	if err != nil {
		return contract.Classification{}, fmt.Errorf("%w: %v", errors.ErrMalformedClassification, err)
	}
	return contract.Classification{Score: score, Label: label}, nil
}
