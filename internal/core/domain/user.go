package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (e.g., UUID)
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	AvatarURL    string `json:"avatarURL,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	// Refresh token rotation state. Only the SHA-256 hash is stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	// Password reset state. Only the hash of the emailed token is stored.
	PasswordResetTokenHash  string     `json:"-"`
	PasswordResetExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo holds the profile fields returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
