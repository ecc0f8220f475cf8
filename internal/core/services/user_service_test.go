package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/core/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserPassword(ctx context.Context, userID string, passwordHash string, now time.Time) error {
	args := m.Called(ctx, userID, passwordHash, now)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordResetToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearPasswordResetToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedAt)
	return args.Error(0)
}

func hashedUser(email, password string) *domain.User {
	hash, _ := utils.HashPassword(password)
	return &domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Aina",
	}
}

func TestCreateUser_HashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, 8*time.Second)

	var saved domain.User
	repo.On("SaveUser", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.User)
	}).Return(nil)

	user, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "aina@example.com",
		Password: "correct horse battery",
		Name:     "Aina",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.NotEqual(t, "correct horse battery", saved.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("correct horse battery", saved.PasswordHash))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, 8*time.Second)

	repo.On("SaveUser", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "aina@example.com",
		Password: "irrelevant-password",
		Name:     "Aina",
	})

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestAuthenticateUser_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, 8*time.Second)
	user := hashedUser("aina@example.com", "correct horse battery")

	repo.On("FindUserByEmail", mock.Anything, "aina@example.com").Return(user, nil)

	got, err := svc.AuthenticateUser(context.Background(), "aina@example.com", "correct horse battery")

	require.NoError(t, err)
	assert.Equal(t, user.UserID, got.UserID)
}

func TestAuthenticateUser_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, 8*time.Second)
	user := hashedUser("aina@example.com", "correct horse battery")

	repo.On("FindUserByEmail", mock.Anything, "aina@example.com").Return(user, nil)

	_, err := svc.AuthenticateUser(context.Background(), "aina@example.com", "wrong password")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthenticateUser_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, 8*time.Second)

	repo.On("FindUserByEmail", mock.Anything, "nobody@example.com").Return(nil, apperrors.ErrNotFound)

	_, err := svc.AuthenticateUser(context.Background(), "nobody@example.com", "whatever")

	// indistinguishable from a wrong password
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, 8*time.Second)
	expired := time.Now().Add(-time.Minute)
	user := hashedUser("aina@example.com", "old password")
	user.PasswordResetExpiryTime = &expired

	repo.On("FindUserByResetTokenHash", mock.Anything, mock.Anything).Return(user, nil)

	err := svc.ResetPassword(context.Background(), "some-token", "new password")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	repo.AssertNotCalled(t, "UpdateUserPassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFindOrCreateGoogleUser_CreatesOnFirstLogin(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo, 8*time.Second)

	repo.On("FindUserByEmail", mock.Anything, "g@example.com").Return(nil, apperrors.ErrNotFound)
	repo.On("SaveUser", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.FindOrCreateGoogleUser(context.Background(), &domain.GoogleUserInfo{
		Email: "g@example.com",
		Name:  "G User",
	})

	require.NoError(t, err)
	assert.Equal(t, "g@example.com", user.Email)
	repo.AssertCalled(t, "SaveUser", mock.Anything, mock.Anything)
}
