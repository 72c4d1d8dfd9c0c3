package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/taskflow-io/taskflow/internal/config"
	"github.com/taskflow-io/taskflow/internal/modules/model"
	"github.com/taskflow-io/taskflow/internal/modules/repo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, in LoginInput) (*AuthOutput, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type authService struct {
	users repo.UserRepo
	rdb   *redis.Client
	cfg   *config.Config
	log   *zap.Logger
}

func NewAuthService(users repo.UserRepo, rdb *redis.Client, cfg *config.Config, log *zap.Logger) AuthService {
	return &authService{users: users, rdb: rdb, cfg: cfg, log: log}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthOutput struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthOutput, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, &u); err != nil {
		// a concurrent registration can slip past the lookup above and land
		// on the unique index instead
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.signToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthOutput{User: &u, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*AuthOutput, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	if !s.allowAttempt(ctx, in.Email) {
		return nil, ErrTooManyLogins
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidLogin
	}

	s.clearAttempts(ctx, in.Email)

	token, err := s.signToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthOutput{User: u, Token: token}, nil
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) signToken(userID uuid.UUID) (string, error) {
	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}

// allowAttempt counts login attempts per email in redis. A redis outage must
// not lock users out, so errors fail open.
func (s *authService) allowAttempt(ctx context.Context, email string) bool {
	if s.rdb == nil {
		return true
	}
	key := "login_attempts:" + email
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		s.log.Sugar().Warnw("login limiter unavailable", "err", err)
		return true
	}
	if n == 1 {
		window := time.Duration(s.cfg.Auth.LoginWindowSec) * time.Second
		s.rdb.Expire(ctx, key, window)
	}
	return n <= int64(s.cfg.Auth.LoginMaxAttempts)
}

func (s *authService) clearAttempts(ctx context.Context, email string) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, "login_attempts:"+email)
}
