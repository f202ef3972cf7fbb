package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"curabot/database/repository"
	"curabot/models"
	"curabot/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.logger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Role, s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{Message: "Login successful", Token: token, User: u.Public()}, nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}
