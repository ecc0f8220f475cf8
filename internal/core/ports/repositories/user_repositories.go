package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a specific user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByResetTokenHash retrieves the user holding a pending password reset token.
	FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateUserPassword replaces the stored password hash for a user.
	UpdateUserPassword(ctx context.Context, userID string, passwordHash string, now time.Time) error
}

// UserTokenWriter defines operations for managing a user's auth token state
type UserTokenWriter interface {
	// UpdateRefreshToken stores the hash and expiry of a newly issued refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error

	// ClearRefreshToken invalidates the user's current refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error

	// UpdatePasswordResetToken stores the hash and expiry of a password reset token.
	UpdatePasswordResetToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error

	// ClearPasswordResetToken invalidates the user's pending password reset token.
	ClearPasswordResetToken(ctx context.Context, userID string) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserTokenWriter
	UserLifecycleManager
}
