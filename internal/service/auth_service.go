package service

import (
	"context"
	"fmt"

	"userauth/internal/auth"
	apperrors "userauth/internal/errors"
	"userauth/internal/model"
	"userauth/internal/repository"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, err error)
}

// TokenIssuer signs login tokens.
type TokenIssuer interface {
	GenerateToken(userID uint, email string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register hashes the password and stores a new user. Uniqueness of the
// email is left to the store.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.ErrValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns a signed token. An unknown
// email and a wrong password are reported as different errors.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperrors.ErrValidation
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
