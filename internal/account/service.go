// Package account owns user registration, authentication and profiles.
package account

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/ripple-social/ripple/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	maxBioLength      = 500
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type Service struct {
	users domain.UserStore
	clock clockwork.Clock
}

func NewService(users domain.UserStore, clock clockwork.Clock) *Service {
	return &Service{users: users, clock: clock}
}

type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Bio         string
}

// Register validates the params, hashes the password and stores the user.
// Duplicate usernames or emails fail with the respective conflict sentinel.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	if err := validateRegistration(params); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
		DisplayName:  params.DisplayName,
		Bio:          params.Bio,
		CreatedAt:    s.clock.Now().UTC(),
		IsActive:     true,
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks username and password. Both an unknown username and a
// wrong password fail with domain.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// UpdateProfile changes the mutable profile fields.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, displayName, bio string) (*domain.User, error) {
	if utf8.RuneCountInString(bio) > maxBioLength {
		return nil, fmt.Errorf("%w: bio exceeds %d characters", domain.ErrInvalidContent, maxBioLength)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.DisplayName = displayName
	user.Bio = bio
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate soft-deletes the account.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.users.Deactivate(ctx, id)
}

func validateRegistration(params RegisterParams) error {
	if !usernamePattern.MatchString(params.Username) {
		return fmt.Errorf("%w: username must be 3-30 characters of letters, digits or underscore", domain.ErrInvalidContent)
	}
	if !emailPattern.MatchString(params.Email) {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidContent)
	}
	if len(params.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", domain.ErrInvalidContent, minPasswordLength)
	}
	if utf8.RuneCountInString(params.Bio) > maxBioLength {
		return fmt.Errorf("%w: bio exceeds %d characters", domain.ErrInvalidContent, maxBioLength)
	}
	return nil
}
