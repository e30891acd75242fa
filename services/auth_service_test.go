package services

import (
	"mood-chat/auth"
	"mood-chat/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	password := "operator password 2026"
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	issuer := auth.NewTokenIssuer("a-secret-only-for-tests", time.Hour)
	svc := NewAuthService(hash, issuer)

	t.Run("should login successfully with the right password", func(t *testing.T) {
		req := require.New(t)

		token, err := svc.Login(password)

		req.NoError(err)
		claims, err := issuer.Validate(token.String())
		req.NoError(err)
		req.True(claims.HasRole(auth.RoleAdmin))
	})

	t.Run("should fail with a wrong password", func(t *testing.T) {
		req := require.New(t)
		token, err := svc.Login("not the operator password")
		req.ErrorIs(err, errors.ErrInvalidCredentials)
		req.Empty(token)
	})

	t.Run("should fail before hashing when the password is too short", func(t *testing.T) {
		req := require.New(t)
		_, err := svc.Login("short")
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should fail when no hash is configured", func(t *testing.T) {
		req := require.New(t)
		_, err := NewAuthService("", issuer).Login(password)
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})
}
