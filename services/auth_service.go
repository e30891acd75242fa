package services

import (
	"fmt"
	"mood-chat/auth"
	"mood-chat/errors"
)

type IAuthService interface {
	Login(password string) (Token, error)
}

type Token string

func (t Token) String() string {
	return string(t)
}

// AuthService authenticates the single operator account guarding /admin.
// Chat participants are anonymous and never go through here.
type AuthService struct {
	passwordHash string
	issuer       *auth.TokenIssuer
}

func NewAuthService(passwordHash string, issuer *auth.TokenIssuer) IAuthService {
	return &AuthService{passwordHash: passwordHash, issuer: issuer}
}

func (s *AuthService) Login(password string) (Token, error) {
	// 1. Validate the input before any expensive cryptographic operation
	if err := auth.ValidateLogin(auth.LoginRequest{Password: password}); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidCredentials, err)
	}

	// 2. Compare with the configured Argon2id hash
	match, err := auth.ComparePassword(password, s.passwordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	// 3. Issue the JWT token
	token, err := s.issuer.Generate("admin", auth.RoleAdmin)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}
