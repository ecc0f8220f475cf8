package models

import (
	"database/sql"
	"time"
)

// User represents a row in the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Name         string         `db:"name"`
	AvatarURL    sql.NullString `db:"avatar_url"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token

	// Password Reset Fields
	PasswordResetTokenHash  sql.NullString `db:"password_reset_token_hash"`
	PasswordResetExpiryTime sql.NullTime   `db:"password_reset_expiry_time"`
}
