package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storynest/internal/auth"
	"storynest/internal/config"
	"storynest/internal/http-api/dto"
	"storynest/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) SearchByName(ctx context.Context, name string) ([]models.User, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(refreshToken *models.RefreshToken) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(tokenString string) (*models.RefreshToken, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(tokenID string) error {
	args := m.Called(tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(tokenID string) error {
	args := m.Called(tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired() error {
	args := m.Called()
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret-at-least-32-characters!!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, refreshRepo, testConfig())

	userRepo.On("FindByEmail", "ada@example.com").Return(nil, errors.New("not found"))
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Register(dto.RegisterRequest{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "password123",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")
	assert.NoError(t, auth.VerifyPassword(user.Password, "password123"))
	assert.Equal(t, "user", user.Role)
	userRepo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, refreshRepo, testConfig())

	userRepo.On("FindByEmail", "ada@example.com").Return(&models.User{Email: "ada@example.com"}, nil)

	_, err := svc.Register(dto.RegisterRequest{Email: "ada@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailInUse)
	userRepo.AssertNotCalled(t, "Create")
}

func TestLogin_IssuesValidatableTokenPair(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, refreshRepo, testConfig())

	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		ID:       "user-123",
		Email:    "ada@example.com",
		Password: hashed,
		Role:     "user",
	}
	userRepo.On("FindByEmail", "ada@example.com").Return(user, nil)
	userRepo.On("Update", user).Return(nil)
	refreshRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	access, refresh, loggedIn, err := svc.Login("ada@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotNil(t, loggedIn.LastLogin, "login stamps last_login")

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "access", claims.Type)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, refreshRepo, testConfig())

	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)

	userRepo.On("FindByEmail", "ada@example.com").
		Return(&models.User{Email: "ada@example.com", Password: hashed}, nil)

	_, _, _, err = svc.Login("ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, refreshRepo, testConfig())

	userRepo.On("FindByEmail", "ghost@example.com").Return(nil, errors.New("not found"))

	_, _, _, err := svc.Login("ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshAccessToken_RotatesAndRevokes(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, refreshRepo, testConfig())

	stored := &models.RefreshToken{
		ID:        "token-id",
		UserID:    "user-123",
		Token:     "opaque-refresh",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	refreshRepo.On("FindByToken", "opaque-refresh").Return(stored, nil)
	userRepo.On("FindByID", "user-123").Return(&models.User{ID: "user-123", Email: "ada@example.com", Role: "user"}, nil)
	refreshRepo.On("Revoke", "token-id").Return(nil)
	refreshRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	access, refresh, err := svc.RefreshAccessToken("opaque-refresh")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, "opaque-refresh", refresh, "the refresh token rotates on use")

	refreshRepo.AssertCalled(t, "Revoke", "token-id")
}

func TestRefreshAccessToken_RevokedToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, refreshRepo, testConfig())

	refreshRepo.On("FindByToken", "revoked-token").
		Return(&models.RefreshToken{ID: "token-id", Revoked: true, ExpiresAt: time.Now().Add(time.Hour)}, nil)

	_, _, err := svc.RefreshAccessToken("revoked-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAccessToken_Expired(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, refreshRepo, testConfig())

	refreshRepo.On("FindByToken", "old-token").
		Return(&models.RefreshToken{ID: "token-id", ExpiresAt: time.Now().Add(-time.Hour)}, nil)
	refreshRepo.On("Delete", "token-id").Return(nil)

	_, _, err := svc.RefreshAccessToken("old-token")
	assert.ErrorIs(t, err, ErrExpiredToken)
	refreshRepo.AssertCalled(t, "Delete", "token-id")
}

func TestValidateToken_RejectsRefreshType(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	svc := NewAuthService(userRepo, refreshRepo, testConfig())

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
