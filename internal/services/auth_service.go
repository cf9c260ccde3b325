package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mateoAlonso06/educatech-api/internal/auth"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
	"github.com/mateoAlonso06/educatech-api/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	tokens    *auth.TokenManager
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, tokens *auth.TokenManager) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		tokens:    tokens,
	}
}

// Login verifies the credentials and issues an access token. Unknown email
// and wrong password produce the same error so the response does not leak
// which accounts exist.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if errs := s.validator.ValidateStruct(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewUnauthorizedError("invalid email or password")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := auth.VerifyPassword(req.Password, user.Password); err != nil {
		s.logger.Warn("Failed login attempt", "user_id", user.ID)
		return nil, NewUnauthorizedError("invalid email or password")
	}

	token, expiresAt, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToResponse(),
	}, nil
}
