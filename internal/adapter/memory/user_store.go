package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
)

type userStore Store

func (s *userStore) Insert(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return domain.ErrUsernameTaken
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.ErrEmailTaken
		}
	}

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *userStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok || !user.IsActive {
		return nil, domain.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (s *userStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) && user.IsActive {
			out := *user
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *userStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok || !existing.IsActive {
		return domain.ErrUserNotFound
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *userStore) Deactivate(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok || !user.IsActive {
		return domain.ErrUserNotFound
	}
	user.IsActive = false
	return nil
}

func (s *userStore) Summaries(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[uuid.UUID]domain.UserSummary, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok && user.IsActive {
			out[id] = user.Summary()
		}
	}
	return out, nil
}
