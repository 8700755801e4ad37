package usecase

import (
	"context"

	"github.com/google/uuid"
)

// UpdateProfileInput carries the mutable profile fields. Nil fields are
// left unchanged.
type UpdateProfileInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	Gender    *string `json:"gender" validate:"omitempty"`
	Password  *string `json:"password" validate:"omitempty"`
}

// ProfileUsecase defines operations on the authenticated account itself.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserOutput, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*UserOutput, error)
}
