// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"unicode"

	"diary/config"
	domainerrors "diary/internal/domain/errors"
	"diary/internal/domain/service"
)

const defaultMinPasswordLength = 5

// passwordPolicy validates candidate passwords against the configured
// strength requirements. The defaults mirror the registration contract:
// at least 5 characters with a lowercase letter, an uppercase letter and
// a digit.
type passwordPolicy struct {
	minLength        int
	requireUppercase bool
	requireLowercase bool
	requireNumbers   bool
}

// NewPasswordPolicy is the constructor for passwordPolicy.
func NewPasswordPolicy(cfg *config.Config) service.PasswordPolicy {
	policy := &passwordPolicy{
		minLength:        defaultMinPasswordLength,
		requireUppercase: true,
		requireLowercase: true,
		requireNumbers:   true,
	}
	if cfg.PasswordStrength != nil {
		strength := cfg.PasswordStrength
		if strength.MinLength > 0 {
			policy.minLength = strength.MinLength
		}
		policy.requireUppercase = strength.RequireUppercase
		policy.requireLowercase = strength.RequireLowercase
		policy.requireNumbers = strength.RequireNumbers
	}

	return policy
}

// Validate returns ErrPasswordStrength when the password misses any
// configured requirement.
func (p *passwordPolicy) Validate(password string) error {
	if len(password) < p.minLength {
		return domainerrors.ErrPasswordStrength
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if p.requireUppercase && !hasUpper {
		return domainerrors.ErrPasswordStrength
	}
	if p.requireLowercase && !hasLower {
		return domainerrors.ErrPasswordStrength
	}
	if p.requireNumbers && !hasDigit {
		return domainerrors.ErrPasswordStrength
	}

	return nil
}
