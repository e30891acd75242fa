package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const (
	SubjectKey contextKey = "subject"
	RolesKey   contextKey = "roles"
)

// UnaryInterceptor requires a Bearer token carrying role on every call.
// It protects the classifier sidecar from anything but the chat server.
func UnaryInterceptor(issuer *TokenIssuer, role string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "metadata is missing")
		}
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "authorization token is missing")
		}

		claims, err := issuer.Validate(strings.TrimPrefix(values[0], "Bearer "))
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}
		if !claims.HasRole(role) {
			return nil, status.Error(codes.PermissionDenied, "missing role "+role)
		}
		return handler(WithClaims(ctx, claims), req)
	}
}

// BearerCredentials attaches a static token to every outgoing gRPC call.
type BearerCredentials struct {
	Token    string
	Insecure bool
}

func (c BearerCredentials) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + c.Token}, nil
}

func (c BearerCredentials) RequireTransportSecurity() bool {
	return !c.Insecure
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, SubjectKey, claims.Subject)
	return context.WithValue(ctx, RolesKey, claims.Roles)
}
