package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, fullName string) (*model.User, string, error) {
	args := m.Called(ctx, email, password, fullName)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email, newPassword string) error {
	args := m.Called(ctx, email, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Register", mock.Anything, "a@b.com", "Abcd123!", "A B").
			Return(&model.User{ID: 1, Email: "a@b.com", FullName: "A B", Role: model.RoleUser}, "signed.token", nil)

		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
			`{"email":"a@b.com","password":"Abcd123!","confirmPassword":"Abcd123!","fullName":"A B"}`)

		assert.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "signed.token", env.Token)
		assert.NotNil(t, env.User)
		mockSvc.AssertExpectations(t)
	})

	t.Run("password mismatch", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
			`{"email":"a@b.com","password":"Abcd123!","confirmPassword":"Different1!","fullName":"A B"}`)

		assert.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "VALIDATION_ERROR", env.Error)
		mockSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Register", mock.Anything, "a@b.com", "Abcd123!", "A B").
			Return(nil, "", errors.ErrUserExists)

		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
			`{"email":"a@b.com","password":"Abcd123!","confirmPassword":"Abcd123!","fullName":"A B"}`)

		assert.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "USER_EXISTS", env.Error)
	})

	t.Run("malformed email", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
			`{"email":"not-an-email","password":"Abcd123!","confirmPassword":"Abcd123!","fullName":"A B"}`)

		assert.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("invalid credentials", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "a@b.com", "wrong").
			Return(nil, "", errors.ErrInvalidCredentials)

		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
			`{"email":"a@b.com","password":"wrong"}`)

		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "INVALID_CREDENTIALS", env.Error)
	})

	t.Run("successful login", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "a@b.com", "Abcd123!").
			Return(&model.User{ID: 1, Email: "a@b.com"}, "signed.token", nil)

		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
			`{"email":"a@b.com","password":"Abcd123!"}`)

		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "signed.token", env.Token)
	})
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	t.Run("unknown email reports not found", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ForgotPassword", mock.Anything, "ghost@b.com", "NewPass123!").
			Return(errors.ErrUserNotFound)

		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/forgot-password",
			`{"email":"ghost@b.com","password":"NewPass123!"}`)

		assert.NoError(t, h.ForgotPassword(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "USER_NOT_FOUND", env.Error)
	})
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	t.Run("invalid token", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ResetPassword", mock.Anything, "bad-token", "NewPass123!").
			Return(errors.ErrInvalidToken)

		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPost, "/api/auth/reset-password",
			`{"token":"bad-token","password":"NewPass123!","confirmPassword":"NewPass123!"}`)

		assert.NoError(t, h.ResetPassword(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "INVALID_TOKEN", env.Error)
	})
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	t.Run("missing claims", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodGet, "/api/auth/current-user", "")

		assert.NoError(t, h.CurrentUser(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns the profile behind the token", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("CurrentUser", mock.Anything, uint(7)).
			Return(&model.User{ID: 7, Email: "a@b.com", FullName: "A B"}, nil)

		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodGet, "/api/auth/current-user", "")
		c.Set("user", &auth.SessionClaims{UserID: 7, Email: "a@b.com", Role: model.RoleUser})

		assert.NoError(t, h.CurrentUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		mockSvc.AssertExpectations(t)
	})
}
