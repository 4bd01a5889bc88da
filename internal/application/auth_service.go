package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notesapp/notes-api/internal/domain/entity"
	"github.com/notesapp/notes-api/internal/domain/repository"
	"github.com/notesapp/notes-api/pkg/helpers"
)

// AuthService covers signup, login and access-token refresh. Refresh
// tokens are not rotated; the refresh endpoint only mints a new access
// token while the cookie-carried token stays valid.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

// TokenPair is what a successful login yields.
type TokenPair struct {
	AccessToken        string
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func (s *AuthService) Signup(ctx context.Context, email, name, password string) (*entity.User, error) {
	if email == "" || name == "" || password == "" {
		return nil, ErrIncompleteData
	}
	if existing, err := s.Users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Email: email, Name: name, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login validates credentials and issues both tokens. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	if email == "" || password == "" {
		return nil, TokenPair{}, ErrIncompleteData
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	access, _, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, TokenPair{AccessToken: access, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh exchanges a valid refresh token for a new access token. Any
// failure collapses to ErrInvalidCredentials so the client only ever
// sees Unauthorized.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if _, err := s.Users.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	access, _, err := s.JWT.GenerateAccessToken(claims.UserID)
	if err != nil {
		return "", err
	}
	return access, nil
}
