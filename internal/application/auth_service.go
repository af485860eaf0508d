package application

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/domain/repository"
	"github.com/easyworldradio/workspace7/internal/infrastructure/records"
)

const (
	minUsernameLen = 3
	minPasswordLen = 4
)

// AuthService implements registration and login. Credentials are
// compared by exact string equality with no hashing; securing them is
// an explicit non-goal of this system.
type AuthService struct {
	Users    repository.UserRepository
	Sessions *SessionService
	Logger   *logrus.Logger
}

func NewAuthService(users repository.UserRepository, sessions *SessionService, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, Logger: logger}
}

// validate runs before any store lookup, identically for both flows.
func validate(username, password string) error {
	if utf8.RuneCountInString(username) < minUsernameLen || utf8.RuneCountInString(password) < minPasswordLen {
		return ErrValidation
	}
	return nil
}

// Register creates a new user and logs them in immediately. Usernames
// are unique by case-sensitive equality.
func (s *AuthService) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if err := validate(username, password); err != nil {
		return nil, err
	}
	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, records.ErrNotFound) {
		return nil, err
	}
	u := &entity.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: password,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.Sessions.Login(ctx, u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return u, nil
}

// Login matches username and password by exact equality and sets the
// session on success.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, error) {
	if err := validate(username, password); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.Password != password {
		return nil, ErrInvalidCredentials
	}
	if err := s.Sessions.Login(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
