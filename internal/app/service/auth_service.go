package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hantaray/movie-api/internal/common"
	"github.com/hantaray/movie-api/internal/common/security"
	"github.com/hantaray/movie-api/internal/domain/model"
	"github.com/hantaray/movie-api/internal/domain/repository"
	"github.com/hantaray/movie-api/internal/platform/limiter"
)

// AuthService implements the local credential strategy: username and
// plaintext password checked against the stored bcrypt hash, a signed
// bearer token issued on success. No server-side session is kept.
type AuthService struct {
	userRepo     repository.UserRepository
	loginLimiter *limiter.LoginLimiter
}

func NewAuthService(userRepo repository.UserRepository, loginLimiter *limiter.LoginLimiter) *AuthService {
	return &AuthService{userRepo: userRepo, loginLimiter: loginLimiter}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest, clientIP string) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrUnauthorized
	}

	throttleKey := req.Username + ":" + clientIP
	if !s.loginLimiter.Allow(ctx, throttleKey) {
		return nil, common.ErrTooManyRequests
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Generic rejection: don't reveal whether the username exists
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.Password) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID.Hex(), user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.loginLimiter.Reset(ctx, throttleKey)
	return &AuthResponse{User: user, Token: token}, nil
}
