// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	deliverycontext "diary/internal/delivery/context"
	"diary/internal/domain/entity"
	domainerrors "diary/internal/domain/errors"
	"diary/internal/domain/repository"
	"diary/internal/domain/service"
	"diary/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	policy       service.PasswordPolicy
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	Policy       service.PasswordPolicy
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		policy:       params.Policy,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// hashToken derives the stored form of a refresh token. Only this hash ever
// reaches the database.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// RegisterUser creates a new account from the registration payload.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	gender := entity.Gender(input.Gender)
	if !gender.Valid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown gender label")
	}

	if err := srv.policy.Validate(input.Password); err != nil {
		srv.log(ctx).Warn("Password rejected during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password")
	}

	newUser := &entity.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		Gender:       gender,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
			}

			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: usecase.NewUserOutput(newUser)}, nil
}

// Login verifies the credentials and issues a new token pair. A missing
// account, a deactivated account and a wrong password are indistinguishable
// to the caller.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Login attempt", slog.String("email", input.Email))

	var output *usecase.LoginOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
			}

			return errors.Wrap(err, "failed to find user by email")
		}

		if !user.IsActive {
			return domainerrors.ErrInvalidCredentials.WrapMessage("account deactivated")
		}

		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
		}

		accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens")
		}

		record := &entity.RefreshToken{
			UserID:    user.ID,
			TokenHash: hashToken(refreshToken),
			ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
		}
		if err := repoFactory.RefreshTokenRepo().Create(ctx, record); err != nil {
			return errors.Wrap(err, "failed to store refresh token")
		}

		output = &usecase.LoginOutput{Token: accessToken, RefreshToken: refreshToken}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("email", input.Email))

	return output, nil
}

// RefreshToken rotates a valid refresh token for a new token pair. The old
// token is invalidated in the same transaction that records the new one.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.LoginOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("token validation failed")
	}

	var output *usecase.LoginOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		oldHash := hashToken(input.RefreshToken)
		record, err := refreshRepo.FindByHash(ctx, oldHash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid.WrapMessage("token not found or expired")
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		if record.UserID != claims.UserID {
			return domainerrors.ErrRefreshTokenInvalid.WrapMessage("token subject mismatch")
		}

		if err := refreshRepo.DeleteByHash(ctx, oldHash); err != nil {
			return errors.Wrap(err, "failed to delete rotated refresh token")
		}

		accessToken, refreshToken, err := srv.tokenService.GenerateTokens(claims.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens")
		}

		newRecord := &entity.RefreshToken{
			UserID:    claims.UserID,
			TokenHash: hashToken(refreshToken),
			ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
		}
		if err := refreshRepo.Create(ctx, newRecord); err != nil {
			return errors.Wrap(err, "failed to store refresh token")
		}

		output = &usecase.LoginOutput{Token: accessToken, RefreshToken: refreshToken}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to rotate refresh token", slog.Any("userID", claims.UserID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Refresh token rotated", slog.Any("userID", claims.UserID))

	return output, nil
}

// Logout invalidates the presented refresh token. An already-invalid token
// still logs out cleanly.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		err := repoFactory.RefreshTokenRepo().DeleteByHash(ctx, hashToken(input.RefreshToken))
		if err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errors.Wrap(err, "failed to delete refresh token")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute logout transaction", slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Logout completed")

	return nil
}
