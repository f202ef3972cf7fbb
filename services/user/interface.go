package user

import (
	"context"
	"time"

	userRepo "curabot/database/repository/user"
	"curabot/models"

	"go.uber.org/zap"
)

type UserService interface {
	// Register creates an account. The requested role is honoured only when callerRole is admin.
	Register(ctx context.Context, req RegisterRequest, callerRole string) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Logger   *zap.Logger
	TokenTTL time.Duration
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse contains the issued token and the public user fields.
type AuthResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

const defaultTokenTTL = 7 * 24 * time.Hour

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL <= 0 {
		return defaultTokenTTL
	}
	return s.TokenTTL
}
