package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestUnaryInterceptor(t *testing.T) {
	issuer := NewTokenIssuer("a-secret-only-for-tests", time.Hour)
	interceptor := UnaryInterceptor(issuer, RoleClassifier)
	info := &grpc.UnaryServerInfo{FullMethod: "/moodchat.safety.v1.SafetyClassifier/Classify"}
	// The handler returns the context it received so we can inspect it
	handler := func(ctx context.Context, req any) (any, error) { return ctx, nil }

	t.Run("should fail when metadata is missing", func(t *testing.T) {
		req := require.New(t)
		_, err := interceptor(context.Background(), nil, info, handler)
		req.Equal(codes.Unauthenticated, status.Code(err))
	})

	t.Run("should fail with invalid token", func(t *testing.T) {
		req := require.New(t)
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer nope"))
		_, err := interceptor(ctx, nil, info, handler)
		req.Equal(codes.Unauthenticated, status.Code(err))
	})

	t.Run("should fail without the expected role", func(t *testing.T) {
		req := require.New(t)
		token, err := issuer.Generate("admin", RoleAdmin)
		req.NoError(err)
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
		_, err = interceptor(ctx, nil, info, handler)
		req.Equal(codes.PermissionDenied, status.Code(err))
	})

	t.Run("should succeed and inject the subject", func(t *testing.T) {
		req := require.New(t)
		token, err := issuer.Generate("chat-server", RoleClassifier)
		req.NoError(err)
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))

		res, err := interceptor(ctx, nil, info, handler)

		req.NoError(err)
		req.Equal("chat-server", res.(context.Context).Value(SubjectKey))
	})
}

func TestRequireRole(t *testing.T) {
	issuer := NewTokenIssuer("a-secret-only-for-tests", time.Hour)
	protected := RequireRole(issuer, RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	adminToken, err := issuer.Generate("admin", RoleAdmin)
	require.NoError(t, err)
	otherToken, err := issuer.Generate("chat-server", RoleClassifier)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"No header", "", http.StatusUnauthorized},
		{"Not a bearer", "Basic abc", http.StatusUnauthorized},
		{"Bad token", "Bearer abc", http.StatusUnauthorized},
		{"Wrong role", "Bearer " + otherToken, http.StatusForbidden},
		{"Admin", "Bearer " + adminToken, http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			r := httptest.NewRequest(http.MethodGet, "/admin/incidents", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, r)
			req.Equal(tt.status, w.Code)
		})
	}
}
