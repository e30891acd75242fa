package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoginRequest is the body of POST /admin/token.
type LoginRequest struct {
	Password string `json:"password" validate:"required,min=12,max=72"`
}

func ValidateLogin(req LoginRequest) error {
	return validate.Struct(req)
}
