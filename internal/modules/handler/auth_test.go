package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/taskflow-io/taskflow/internal/modules/model"
	"github.com/taskflow-io/taskflow/internal/modules/service"
)

// MockAuthService is a mock implementation of service.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthOutput), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in service.LoginInput) (*service.AuthOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthOutput), args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &MockAuthService{}
	svc.On("Register", mock.Anything, service.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	}).Return(&service.AuthOutput{
		User:  &model.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"},
		Token: "token-abc",
	}, nil)

	r := newTestRouter(uuid.New())
	r.POST("/auth/register", NewAuthHandler(svc).Register)

	w := doJSON(r, http.MethodPost, "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"hunter22"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"token-abc"`)
	// the password hash must never serialize
	assert.NotContains(t, w.Body.String(), "password")
	svc.AssertExpectations(t)
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	svc := &MockAuthService{}
	r := newTestRouter(uuid.New())
	r.POST("/auth/register", NewAuthHandler(svc).Register)

	w := doJSON(r, http.MethodPost, "/auth/register", `{"name":"Ada","email":"not-an-email","password":"hunter22"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &MockAuthService{}
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, service.ErrInvalidLogin)

	r := newTestRouter(uuid.New())
	r.POST("/auth/login", NewAuthHandler(svc).Login)

	w := doJSON(r, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_TooManyAttempts(t *testing.T) {
	svc := &MockAuthService{}
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, service.ErrTooManyLogins)

	r := newTestRouter(uuid.New())
	r.POST("/auth/login", NewAuthHandler(svc).Login)

	w := doJSON(r, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"hunter22"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	userID := uuid.New()

	svc := &MockAuthService{}
	svc.On("GetUser", mock.Anything, userID).
		Return(&model.User{ID: userID, Name: "Ada", Email: "ada@example.com"}, nil)

	r := newTestRouter(userID)
	r.GET("/auth/me", NewAuthHandler(svc).Me)

	w := doJSON(r, http.MethodGet, "/auth/me", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"ada@example.com"`)
}
