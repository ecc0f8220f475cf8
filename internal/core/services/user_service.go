package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/dompetku/dompetku_backend/internal/utils"
	"github.com/google/uuid"
)

// passwordResetTokenTTL bounds how long an emailed reset token stays valid.
const passwordResetTokenTTL = time.Hour

type userService struct {
	userRepo    portsrepo.UserRepositoryFacade
	authTimeout time.Duration
}

// NewUserService creates the user service. authTimeout caps how long a
// credential check may take before the login attempt is abandoned.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, authTimeout time.Duration) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		authTimeout: authTimeout,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "self-registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "self-registration",
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByEmail retrieves a user by email address.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

// AuthenticateUser checks an email/password pair. The check runs under an
// advisory deadline so a slow storage layer cannot hang the login endpoint.
// The same ErrUnauthorized comes back for unknown email and wrong password.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.authTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.authTimeout)
		defer cancel()
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.ErrTimeout
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// FindOrCreateGoogleUser resolves a local user for a verified Google profile.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	newUser := domain.User{
		UserID:    uuid.NewString(),
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "google-oauth",
			LastUpdatedAt: now,
			LastUpdatedBy: "google-oauth",
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		logger.Error("Failed to create user from google profile", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User created from google profile", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

// UpdateUser updates a user's profile fields.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

// UpdatePassword changes a user's password after verifying the current one.
func (s *userService) UpdatePassword(ctx context.Context, userID string, currentPassword, newPassword string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrUnauthorized
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdateUserPassword(ctx, userID, hash, time.Now()); err != nil {
		logger.Error("Failed to update password", slog.String("error", err.Error()), slog.String("user_id", userID))
		return err
	}

	logger.Info("Password updated", slog.String("user_id", userID))
	return nil
}

// InitiatePasswordReset issues a reset token for the given email. Only the
// SHA-256 hash is stored; the plaintext token goes back to the caller for
// delivery. An unknown email still returns a token so the endpoint does not
// leak which addresses exist.
func (s *userService) InitiatePasswordReset(ctx context.Context, email string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return token, nil
		}
		return "", err
	}

	expiry := time.Now().Add(passwordResetTokenTTL)
	if err := s.userRepo.UpdatePasswordResetToken(ctx, user.UserID, utils.HashRefreshToken(token), expiry); err != nil {
		logger.Error("Failed to store reset token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return "", err
	}

	logger.Info("Password reset initiated", slog.String("user_id", user.UserID))
	return token, nil
}

// ResetPassword sets a new password using a previously issued reset token.
func (s *userService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByResetTokenHash(ctx, utils.HashRefreshToken(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return err
	}
	if user.PasswordResetExpiryTime == nil || time.Now().After(*user.PasswordResetExpiryTime) {
		return apperrors.ErrUnauthorized
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdateUserPassword(ctx, user.UserID, hash, time.Now()); err != nil {
		return err
	}
	if err := s.userRepo.ClearPasswordResetToken(ctx, user.UserID); err != nil {
		logger.Warn("Failed to clear used reset token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
	}

	logger.Info("Password reset completed", slog.String("user_id", user.UserID))
	return nil
}

// UpdateRefreshToken stores the hash and expiry of a newly issued refresh token.
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

// ClearRefreshToken clears the refresh token for a user.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// DeleteUser marks a user as deleted (soft delete).
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now()); err != nil {
		logger.Error("Failed to delete user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return err
	}
	logger.Info("User deleted", slog.String("user_id", userID))
	return nil
}
