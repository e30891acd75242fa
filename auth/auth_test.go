package auth

import (
	"mood-chat/errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	// Then a wrong password does not match
	match, err = ComparePassword("wrong password!", hash)
	req.NoError(err)
	req.False(match)
}

func TestComparePassword_Invalid_Hash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"Empty", ""},
		{"Bcrypt hash", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"},
		{"Bad parameters", "$argon2id$v=19$m=abc$c2FsdA$aGFzaA"},
		{"Bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			match, err := ComparePassword("whatever-password", tt.hash)
			req.ErrorIs(err, errors.ErrInvalidHash)
			req.False(match)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{"Valid request", LoginRequest{"a long enough password"}, false},
		{"Missing password", LoginRequest{""}, true},
		{"Password too short", LoginRequest{"short"}, true},
		{"Password too long", LoginRequest{strings.Repeat("a", 73)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := ValidateLogin(tt.req)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
		})
	}
}

func TestTokenIssuer(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("a-secret-only-for-tests", time.Hour)

	token, err := issuer.Generate("admin", RoleAdmin)
	req.NoError(err)

	claims, err := issuer.Validate(token)
	req.NoError(err)
	req.Equal("admin", claims.Subject)
	req.True(claims.HasRole(RoleAdmin))
	req.False(claims.HasRole(RoleClassifier))

	// Then another secret refuses it
	_, err = NewTokenIssuer("another-secret", time.Hour).Validate(token)
	req.ErrorIs(err, errors.ErrInvalidToken)

	// And an expired token is refused
	expired, err := NewTokenIssuer("a-secret-only-for-tests", -time.Minute).Generate("admin", RoleAdmin)
	req.NoError(err)
	_, err = issuer.Validate(expired)
	req.ErrorIs(err, errors.ErrInvalidToken)
}

// BenchmarkHashPassword measures the CPU/RAM cost of one admin login
func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("A-very-long-and-complex-password-for-bench-123!")
	}
}
