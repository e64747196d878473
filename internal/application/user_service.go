package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-notes-api/internal/domain/entity"
	repo "github.com/oksasatya/go-notes-api/internal/domain/repository"
	"github.com/oksasatya/go-notes-api/pkg/helpers"
)

// UserService handles registration and credential verification. On a
// successful login it hands the user to the JWT manager for token issuance.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Logger: logger}
}

// Register validates the raw request fields in a fixed order, hashes the
// password, and creates the user. The raw map is needed because the API
// distinguishes an absent field from a present non-string one.
func (s *UserService) Register(ctx context.Context, raw map[string]any) (*entity.User, error) {
	for _, field := range []string{"username", "password"} {
		if _, ok := raw[field]; !ok {
			return nil, invalid("Missing " + field + " in request")
		}
	}

	for _, field := range []string{"fullName", "username", "password"} {
		if v, ok := raw[field]; ok {
			if _, isStr := v.(string); !isStr {
				return nil, invalid(field + " should be a string!")
			}
		}
	}

	username := raw["username"].(string)
	password := raw["password"].(string)
	fullName := ""
	if v, ok := raw["fullName"]; ok {
		fullName = v.(string)
	}

	if len(username) < 1 {
		return nil, invalid("Username can't be empty!")
	}
	if len(password) < 8 || len(password) > 72 {
		return nil, invalid("Password must be between 8 and 72 characters!")
	}
	for _, field := range []string{"username", "password"} {
		v := raw[field].(string)
		if strings.TrimSpace(v) != v {
			return nil, invalid(field + " cannot contain leading or trailing spaces!")
		}
	}

	digest, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Username: username, FullName: fullName, PasswordHash: digest}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords collapse into the same generic failure.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).Error("credential lookup failed")
		}
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a signed token whose subject is the
// username and whose payload carries the public user projection.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	token, _, err := s.JWT.IssueToken(helpers.TokenUser{ID: u.ID, Username: u.Username, FullName: u.FullName})
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token issuance failed")
		}
		return "", err
	}
	return token, nil
}
