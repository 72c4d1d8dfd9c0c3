package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/taskflow-io/taskflow/internal/config"
	"github.com/taskflow-io/taskflow/internal/modules/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepo is a mock implementation of UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func authTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTLHours = 24
	cfg.Auth.LoginMaxAttempts = 5
	cfg.Auth.LoginWindowSec = 900
	return cfg
}

func TestAuthService_Register(t *testing.T) {
	users := &MockUserRepo{}
	users.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// the stored hash must verify against the raw password
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")) == nil
	})).Return(nil)

	svc := NewAuthService(users, nil, authTestConfig(), zap.NewNop())
	out, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ada", out.User.Name)
	assert.NotEmpty(t, out.Token)

	parsed, err := jwt.Parse(out.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	sub, _ := parsed.Claims.GetSubject()
	assert.Equal(t, out.User.ID.String(), sub)
	users.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	users := &MockUserRepo{}
	users.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&model.User{Email: "ada@example.com"}, nil)

	svc := NewAuthService(users, nil, authTestConfig(), zap.NewNop())
	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Register_ConcurrentDuplicate(t *testing.T) {
	// the duplicate lands on the unique index when two registrations race
	// past the email lookup
	users := &MockUserRepo{}
	users.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).
		Return(gorm.ErrDuplicatedKey)

	svc := NewAuthService(users, nil, authTestConfig(), zap.NewNop())
	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc := NewAuthService(&MockUserRepo{}, nil, authTestConfig(), zap.NewNop())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "12345",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	userID := uuid.New()

	users := &MockUserRepo{}
	users.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&model.User{ID: userID, Email: "ada@example.com", PasswordHash: string(hash)}, nil)

	svc := NewAuthService(users, nil, authTestConfig(), zap.NewNop())
	out, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "hunter22"})

	assert.NoError(t, err)
	assert.Equal(t, userID, out.User.ID)
	assert.NotEmpty(t, out.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)

	users := &MockUserRepo{}
	users.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&model.User{Email: "ada@example.com", PasswordHash: string(hash)}, nil)

	svc := NewAuthService(users, nil, authTestConfig(), zap.NewNop())
	_, err := svc.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := &MockUserRepo{}
	users.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(users, nil, authTestConfig(), zap.NewNop())
	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})

	// unknown email and bad password are indistinguishable to the caller
	assert.ErrorIs(t, err, ErrInvalidLogin)
}
