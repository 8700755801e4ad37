// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"diary/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new account.
type RegisterUserInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	Gender    string `json:"gender" validate:"required"`
}

// LoginInput defines the data required to obtain a token pair.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenInput carries the refresh token to rotate.
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutInput carries the refresh token to invalidate.
type LogoutInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// --- Output DTOs ---

// UserOutput is the public view of an account. The password hash never
// appears here.
type UserOutput struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Gender    string `json:"gender"`
	IsFamily  bool   `json:"is_family"`
}

// NewUserOutput maps a user entity to its public view.
func NewUserOutput(user *entity.User) *UserOutput {
	return &UserOutput{
		Email:     user.Email,
		FirstName: user.FirstName,
		Gender:    string(user.Gender),
		IsFamily:  user.IsFamily,
	}
}

// RegisterOutput returns the newly created account's public view.
type RegisterOutput struct {
	User *UserOutput `json:"user"`
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*LoginOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
}
