package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/dompetku/dompetku_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, password_hash, name, avatar_url,
	refresh_token_hash, refresh_token_expiry_time,
	password_reset_token_hash, password_reset_expiry_time,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		AvatarURL:    toNullString(d.AvatarURL),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
		DeletedAt:               d.DeletedAt,
		RefreshTokenHash:        toNullString(d.RefreshTokenHash),
		RefreshTokenExpiryTime:  toNullTime(d.RefreshTokenExpiryTime),
		PasswordResetTokenHash:  toNullString(d.PasswordResetTokenHash),
		PasswordResetExpiryTime: toNullTime(d.PasswordResetExpiryTime),
	}
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		AvatarURL:    m.AvatarURL.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt:               m.DeletedAt,
		RefreshTokenHash:        m.RefreshTokenHash.String,
		RefreshTokenExpiryTime:  fromNullTime(m.RefreshTokenExpiryTime),
		PasswordResetTokenHash:  m.PasswordResetTokenHash.String,
		PasswordResetExpiryTime: fromNullTime(m.PasswordResetExpiryTime),
	}
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.PasswordHash,
		&m.Name,
		&m.AvatarURL,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.PasswordResetTokenHash,
		&m.PasswordResetExpiryTime,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := toModelUser(user)
	query := `
        INSERT INTO users (user_id, email, password_hash, name, avatar_url,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.Name,
		modelUser.AvatarURL,
		modelUser.CreatedAt,
		modelUser.CreatedBy,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on email
			return fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	modelUser, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL;
	`
	modelUser, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE password_reset_token_hash = $1 AND deleted_at IS NULL;
	`
	modelUser, err := scanUser(r.db.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by reset token: %w", err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	modelUser := toModelUser(user)
	query := `
        UPDATE users
        SET name = $1, avatar_url = $2, last_updated_at = $3, last_updated_by = $4
        WHERE user_id = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelUser.Name,
		modelUser.AvatarURL,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
		modelUser.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUserPassword(ctx context.Context, userID string, passwordHash string, now time.Time) error {
	query := `
        UPDATE users
        SET password_hash = $1, last_updated_at = $2, last_updated_by = $3
        WHERE user_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, passwordHash, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error {
	query := `
        UPDATE users
        SET refresh_token_hash = $1, refresh_token_expiry_time = $2, last_updated_at = NOW()
        WHERE user_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, tokenHash, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
        UPDATE users
        SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL, last_updated_at = NOW()
        WHERE user_id = $1 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordResetToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error {
	query := `
        UPDATE users
        SET password_reset_token_hash = $1, password_reset_expiry_time = $2, last_updated_at = NOW()
        WHERE user_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, tokenHash, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("failed to update password reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearPasswordResetToken(ctx context.Context, userID string) error {
	query := `
        UPDATE users
        SET password_reset_token_hash = NULL, password_reset_expiry_time = NULL, last_updated_at = NOW()
        WHERE user_id = $1 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear password reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	query := `
        UPDATE users
        SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE user_id = $2 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// User might not exist or was already deleted
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
