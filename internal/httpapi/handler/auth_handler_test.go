package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviemarks/internal/httpapi/dto"
	"moviemarks/internal/httpapi/handler"
	"moviemarks/internal/httpapi/models"
	"moviemarks/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, username string) (*models.User, error) {
	args := m.Called(ctx, email, password, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(2) == nil {
		return "", "", nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID, fullName, username string) (*models.User, error) {
	args := m.Called(ctx, userID, fullName, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// --- SETUP ---

func setupAuthRouter(mockService *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAuthHandler(mockService)
	h.RegisterRoutes(r.Group("/api/auth"))
	return r
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// --- TESTS ---

func TestAuthHandlerRegister(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Register", mock.Anything, "alice@example.com", "secretpass", "").
			Return(&models.User{ID: "u1", Email: "alice@example.com", Username: "alice"}, nil)

		r := setupAuthRouter(mockService)
		w := postJSON(r, "/api/auth/register", dto.RegisterRequest{
			Email:    "alice@example.com",
			Password: "secretpass",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "alice")
		mockService.AssertExpectations(t)
	})

	t.Run("EmailInUse", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Register", mock.Anything, "alice@example.com", "secretpass", "").
			Return(nil, service.ErrEmailInUse)

		r := setupAuthRouter(mockService)
		w := postJSON(r, "/api/auth/register", dto.RegisterRequest{
			Email:    "alice@example.com",
			Password: "secretpass",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		// no account enumeration detail in the body
		assert.NotContains(t, w.Body.String(), "alice@example.com")
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		mockService := new(MockAuthService)

		r := setupAuthRouter(mockService)
		w := postJSON(r, "/api/auth/register", gin.H{"email": "not-an-email", "password": "secretpass"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Register")
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Login", mock.Anything, "alice@example.com", "secretpass").
			Return("access-token", "refresh-token", &models.User{ID: "u1", Username: "alice"}, nil)

		r := setupAuthRouter(mockService)
		w := postJSON(r, "/api/auth/login", dto.LoginRequest{
			Email:    "alice@example.com",
			Password: "secretpass",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.AuthResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
		assert.Equal(t, "u1", resp.UserID)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Login", mock.Anything, "alice@example.com", "wrong").
			Return("", "", nil, service.ErrInvalidCredentials)

		r := setupAuthRouter(mockService)
		w := postJSON(r, "/api/auth/login", dto.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandlerRefreshToken(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("RefreshAccessToken", mock.Anything, "rt1").Return("new-access-token", nil)

		r := setupAuthRouter(mockService)
		w := postJSON(r, "/api/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "rt1"})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.RefreshResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "new-access-token", resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
	})

	t.Run("Invalid", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("RefreshAccessToken", mock.Anything, "bad").Return("", service.ErrInvalidToken)

		r := setupAuthRouter(mockService)
		w := postJSON(r, "/api/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "bad"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandlerVerifyEmail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("VerifyEmail", mock.Anything, "alice@example.com", "123456").Return(nil)

		r := setupAuthRouter(mockService)
		w := postJSON(r, "/api/auth/verify", dto.VerifyEmailRequest{
			Email: "alice@example.com",
			Code:  "123456",
		})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CodeMismatch", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("VerifyEmail", mock.Anything, "alice@example.com", "000000").
			Return(service.ErrCodeMismatch)

		r := setupAuthRouter(mockService)
		w := postJSON(r, "/api/auth/verify", dto.VerifyEmailRequest{
			Email: "alice@example.com",
			Code:  "000000",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("VerifyEmail", mock.Anything, "ghost@example.com", "123456").
			Return(service.ErrUserNotFound)

		r := setupAuthRouter(mockService)
		w := postJSON(r, "/api/auth/verify", dto.VerifyEmailRequest{
			Email: "ghost@example.com",
			Code:  "123456",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
