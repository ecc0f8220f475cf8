package services

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates a new user.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user's profile.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// UpdatePassword changes a user's password after verifying the current one.
	UpdatePassword(ctx context.Context, userID string, currentPassword, newPassword string) error

	// UpdateRefreshToken updates the refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserPasswordResetSvc defines the password reset flow operations
type UserPasswordResetSvc interface {
	// InitiatePasswordReset issues a reset token for the given email.
	// It returns the plaintext token so the caller can deliver it.
	InitiatePasswordReset(ctx context.Context, email string) (string, error)

	// ResetPassword sets a new password using a previously issued reset token.
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser marks a user as deleted (soft delete).
	DeleteUser(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves a local user for a Google profile,
	// creating one on first login.
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserPasswordResetSvc
	UserLifecycleSvc
	UserAuthSvc
}
