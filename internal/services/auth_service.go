package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"task-tracker.com/task-tracker/internal/auth"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

// UserStore returns repository.ErrUserNotFound for unknown users and
// apperrors.ErrUsernameTaken on duplicate usernames.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// Session is the result of a successful register or login.
type Session struct {
	User        *model.User
	AccessToken string
	ExpiresIn   int64
}

type AuthService struct {
	users  UserStore
	hasher *auth.PasswordHasher
	tokens *auth.TokenIssuer
}

func NewAuthService(users UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return nil, apperrors.ErrInvalidUsername
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return nil, apperrors.ErrInvalidPassword
	}

	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index still guards against a concurrent register.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.newSession(user)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.newSession(user)
}

// ResolveCaller maps a bearer credential to the id of the user it was issued
// to. Tokens of users that no longer exist are rejected.
func (s *AuthService) ResolveCaller(ctx context.Context, credential string) (string, error) {
	if credential == "" {
		return "", apperrors.ErrUnauthorized
	}

	claims, err := s.tokens.Parse(credential)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", err
	}

	return user.ID, nil
}

func (s *AuthService) Me(ctx context.Context, callerID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) newSession(user *model.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{
		User:        user,
		AccessToken: token,
		ExpiresIn:   s.tokens.TTL(),
	}, nil
}
