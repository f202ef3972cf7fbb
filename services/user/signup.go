package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"curabot/database/repository"
	"curabot/models"
	"curabot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Register validates the request, stores the account and issues a token.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest, callerRole string) (*AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	role := models.RolePatient
	if callerRole == models.RoleAdmin && req.Role != "" {
		if !models.IsValidRole(req.Role) {
			return nil, ErrInvalidRole
		}
		role = req.Role
	}

	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		s.logger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := utils.GenerateToken(u.ID, u.Role, s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.logger().Info("User registered", zap.String("userID", u.ID), zap.String("role", u.Role))
	return &AuthResponse{Message: "User registered successfully", Token: token, User: u.Public()}, nil
}
