// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"diary/internal/domain/entity"
)

// ErrRefreshTokenNotFound is returned when a refresh token is not found or expired.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository defines the operations for session persistence.
type RefreshTokenRepository interface {
	// Create persists a new refresh token record.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a non-expired refresh token by its SHA-256 hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByHash removes a refresh token by its SHA-256 hash.
	DeleteByHash(ctx context.Context, tokenHash string) error
}
