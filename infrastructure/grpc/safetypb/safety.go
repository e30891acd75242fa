// Package safetypb describes the SafetyClassifier gRPC service.
//
// The service only uses well-known protobuf types, so no generated code is
// needed: requests are google.protobuf.StringValue, responses are a
// google.protobuf.Struct carrying a "score" number and a "label" string.
package safetypb

import (
	"context"
	"fmt"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName                              = "moodchat.safety.v1.SafetyClassifier"
	SafetyClassifier_Classify_FullMethodName = "/" + ServiceName + "/Classify"

	FieldScore = "score"
	FieldLabel = "label"
)

type SafetyClassifierClient interface {
	Classify(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type safetyClassifierClient struct {
	cc grpc.ClientConnInterface
}

func NewSafetyClassifierClient(cc grpc.ClientConnInterface) SafetyClassifierClient {
	return &safetyClassifierClient{cc}
}

func (c *safetyClassifierClient) Classify(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SafetyClassifier_Classify_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type SafetyClassifierServer interface {
	Classify(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

func RegisterSafetyClassifierServer(s grpc.ServiceRegistrar, srv SafetyClassifierServer) {
	s.RegisterService(&SafetyClassifier_ServiceDesc, srv)
}

func _SafetyClassifier_Classify_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SafetyClassifierServer).Classify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SafetyClassifier_Classify_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SafetyClassifierServer).Classify(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var SafetyClassifier_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SafetyClassifierServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Classify",
			Handler:    _SafetyClassifier_Classify_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "moodchat/safety/v1/safety.proto",
}

func NewVerdict(score float64, label string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldScore: structpb.NewNumberValue(score),
		FieldLabel: structpb.NewStringValue(label),
	}}
}

// ParseVerdict refuses a response without a numeric score or a string label.
func ParseVerdict(s *structpb.Struct) (float64, string, error) {
	score, ok := s.GetFields()[FieldScore].GetKind().(*structpb.Value_NumberValue)
	if !ok || math.IsNaN(score.NumberValue) {
		return 0, "", fmt.Errorf("missing %q", FieldScore)
	}
	label, ok := s.GetFields()[FieldLabel].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return 0, "", fmt.Errorf("missing %q", FieldLabel)
	}
	return score.NumberValue, label.StringValue, nil
}
