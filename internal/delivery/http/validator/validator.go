// Package validator adapts go-playground/validator to echo's Validator hook.
package validator

import (
	domainerrors "diary/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a validator.Validate instance for echo.
type Validator struct {
	validate *validator.Validate
}

// New builds the request validator used by the HTTP server.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks the struct tags of a bound request payload. Failures map
// to the shared validation error so the error handler renders a 400.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
