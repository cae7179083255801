package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storynest/internal/http-api/dto"
	"storynest/internal/http-api/models"
	"storynest/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(req dto.RegisterRequest) (*models.User, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(email, password string) (string, string, *models.User, error) {
	args := m.Called(email, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(refreshToken string) (string, string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) RevokeToken(refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRegister_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 15*time.Minute)
	router := setupRouter()
	router.POST("/register/", handler.Register)

	reqBody := dto.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Reader",
		Email:     "ada@example.com",
		Password:  "password123",
	}

	user := &models.User{
		ID:        "user-123",
		FirstName: "Ada",
		LastName:  "Reader",
		Email:     "ada@example.com",
	}
	mockAuthService.On("Register", reqBody).Return(user, nil)

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/register/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.RegisterResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "user-123", response.UserID)
	assert.Equal(t, "ada@example.com", response.Email)

	mockAuthService.AssertExpectations(t)
}

func TestRegister_EmailInUse(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 15*time.Minute)
	router := setupRouter()
	router.POST("/register/", handler.Register)

	reqBody := dto.RegisterRequest{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "password123",
	}
	mockAuthService.On("Register", reqBody).Return(nil, service.ErrEmailInUse)

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/register/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestRegister_InvalidBody(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 15*time.Minute)
	router := setupRouter()
	router.POST("/register/", handler.Register)

	// password below the minimum length never reaches the service
	body := []byte(`{"first_name": "Ada", "email": "ada@example.com", "password": "short"}`)
	req, _ := http.NewRequest("POST", "/register/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "Register")
}

func TestLogin_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 15*time.Minute)
	router := setupRouter()
	router.POST("/login/", handler.Login)

	user := &models.User{
		ID:    "user-123",
		Email: "ada@example.com",
		Role:  "admin",
	}
	mockAuthService.On("Login", "ada@example.com", "password123").
		Return("access-token", "refresh-token", user, nil)

	body, _ := json.Marshal(dto.LoginRequest{Email: "ada@example.com", Password: "password123"})
	req, _ := http.NewRequest("POST", "/login/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-token", response.RefreshToken)
	assert.True(t, response.IsAdmin)
	assert.Equal(t, int64(900), response.ExpiresIn)

	mockAuthService.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 15*time.Minute)
	router := setupRouter()
	router.POST("/login/", handler.Login)

	mockAuthService.On("Login", "ada@example.com", "wrong").
		Return("", "", nil, service.ErrInvalidCredentials)

	body, _ := json.Marshal(dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	req, _ := http.NewRequest("POST", "/login/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestRefreshToken_RotatesPair(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 15*time.Minute)
	router := setupRouter()
	router.POST("/token/refresh/", handler.RefreshToken)

	mockAuthService.On("RefreshAccessToken", "old-refresh").
		Return("new-access", "new-refresh", nil)

	body := []byte(`{"refresh": "old-refresh"}`)
	req, _ := http.NewRequest("POST", "/token/refresh/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.RefreshResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "new-access", response.AccessToken)
	assert.Equal(t, "new-refresh", response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)

	mockAuthService.AssertExpectations(t)
}

func TestRefreshToken_Invalid(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 15*time.Minute)
	router := setupRouter()
	router.POST("/token/refresh/", handler.RefreshToken)

	mockAuthService.On("RefreshAccessToken", "revoked").
		Return("", "", service.ErrInvalidToken)

	body := []byte(`{"refresh": "revoked"}`)
	req, _ := http.NewRequest("POST", "/token/refresh/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestRevokeToken_AlwaysSucceeds(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, 15*time.Minute)
	router := setupRouter()
	router.POST("/token/revoke/", handler.RevokeToken)

	// unknown tokens report success to avoid token fishing
	mockAuthService.On("RevokeToken", "unknown").Return(service.ErrInvalidToken)

	body := []byte(`{"refresh": "unknown"}`)
	req, _ := http.NewRequest("POST", "/token/revoke/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockAuthService.AssertExpectations(t)
}
