package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"schoolapi/internal/auth"
	apperrors "schoolapi/internal/errors"
	"schoolapi/internal/model"
	"schoolapi/internal/repository"
)

// DefaultMinPasswordLength is the password length policy when none is configured.
const DefaultMinPasswordLength = 6

// AuthPolicy holds the registration rules.
type AuthPolicy struct {
	// MinPasswordLength is the minimum number of characters; 0 disables the check.
	MinPasswordLength int
	// DefaultRole is stored on every newly registered user.
	DefaultRole string
}

// AuthService handles registration, login and session lookups.
type AuthService interface {
	Register(ctx context.Context, username, email, fullName, password string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	CurrentUser(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

type authService struct {
	users    repository.UserRepository
	hasher   auth.PasswordHasher
	sessions auth.Registry
	policy   AuthPolicy
	log      *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, sessions auth.Registry, policy AuthPolicy, log *slog.Logger) AuthService {
	if policy.DefaultRole == "" {
		policy.DefaultRole = "user"
	}
	if log == nil {
		log = slog.Default()
	}
	return &authService{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		policy:   policy,
		log:      log,
	}
}

// Register creates a user and returns it with a fresh session token.
func (s *authService) Register(ctx context.Context, username, email, fullName, password string) (*model.User, string, error) {
	if err := s.checkPassword(password); err != nil {
		return nil, "", err
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// Check uniqueness up front for a friendly error; the unique indexes
	// still decide races below.
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, "", apperrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", apperrors.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		Role:         s.policy.DefaultRole,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, "", apperrors.ErrUsernameTaken
		case errors.Is(err, repository.ErrEmailExists):
			return nil, "", apperrors.ErrEmailRegistered
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login verifies credentials and issues a new session. Unknown usernames and
// wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("verify password for user %d: %w", user.ID, err)
	}
	if !ok {
		s.log.InfoContext(ctx, "login failed", "user_id", user.ID)
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, "", apperrors.ErrAccountDeactivated
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// CurrentUser resolves token to its user.
func (s *authService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	userID, ok, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrNotAuthenticated
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Logout revokes token. Unknown tokens are ignored and a failing session store
// is logged, so logout always succeeds for the caller.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		s.log.ErrorContext(ctx, "revoke session failed", "error", err)
	}
	return nil
}

// ChangePassword replaces the password of userID after checking the current
// one. Existing sessions stay valid.
func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotAuthenticated
		}
		return fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password for user %d: %w", user.ID, err)
	}
	if !ok {
		return apperrors.ErrIncorrectPassword
	}

	if err := s.checkPassword(newPassword); err != nil {
		return err
	}
	if newPassword == currentPassword {
		return apperrors.ErrPasswordUnchanged
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.InfoContext(ctx, "password changed", "user_id", user.ID)
	return nil
}

func (s *authService) checkPassword(password string) error {
	if s.policy.MinPasswordLength > 0 && len([]rune(password)) < s.policy.MinPasswordLength {
		return apperrors.ErrPasswordTooShort
	}
	return nil
}
