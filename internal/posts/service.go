// Package posts implements post creation and retrieval. Creation runs the
// content extractor and sentiment classifier before anything is persisted;
// content is immutable afterwards and deletion is a soft-delete flag.
package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/ripple-social/ripple/internal/adapter/metrics"
	"github.com/ripple-social/ripple/internal/content"
	"github.com/ripple-social/ripple/internal/domain"
	"github.com/ripple-social/ripple/internal/sentiment"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	posts      domain.PostStore
	users      domain.UserStore
	classifier *sentiment.Classifier
	clock      clockwork.Clock
}

func NewService(posts domain.PostStore, users domain.UserStore, classifier *sentiment.Classifier, clock clockwork.Clock) *Service {
	return &Service{posts: posts, users: users, classifier: classifier, clock: clock}
}

// Create validates text, derives hashtags, mentions and sentiment, and
// persists the post. Mentioned handles that resolve to no active user are
// dropped silently.
func (s *Service) Create(ctx context.Context, author uuid.UUID, text string) (*domain.Post, error) {
	if err := validateContent(text); err != nil {
		return nil, err
	}

	result, err := s.classifier.Classify(text)
	if err != nil {
		return nil, err
	}

	mentions, err := s.resolveMentions(ctx, content.ExtractMentions(text))
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:        uuid.New(),
		Author:    author,
		Content:   text,
		Hashtags:  content.ExtractHashtags(text),
		Mentions:  mentions,
		Sentiment: result,
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	metrics.PostsCreated.Inc()
	metrics.SentimentAssigned.WithLabelValues(string(result.Label)).Inc()
	return post, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Delete soft-deletes a post. Only the author may delete it.
func (s *Service) Delete(ctx context.Context, id, requester uuid.UUID) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.Author != requester {
		return domain.ErrNotPostAuthor
	}
	return s.posts.SoftDelete(ctx, id)
}

func (s *Service) ListByAuthor(ctx context.Context, author uuid.UUID, limit, offset int) ([]domain.Post, error) {
	return s.posts.ListByAuthor(ctx, author, clampPage(limit), clampOffset(offset))
}

func (s *Service) ListBySentiment(ctx context.Context, label domain.SentimentLabel, limit, offset int) ([]domain.Post, error) {
	switch label {
	case domain.SentimentPositive, domain.SentimentNegative, domain.SentimentNeutral:
	default:
		return nil, fmt.Errorf("%w: unknown sentiment label %q", domain.ErrInvalidContent, label)
	}
	return s.posts.ListBySentiment(ctx, label, clampPage(limit), clampOffset(offset))
}

func (s *Service) ListRecent(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	return s.posts.ListRecent(ctx, clampPage(limit), clampOffset(offset))
}

func (s *Service) Search(ctx context.Context, text string, limit, offset int) ([]domain.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: search text must not be empty", domain.ErrInvalidContent)
	}
	return s.posts.Search(ctx, text, clampPage(limit), clampOffset(offset))
}

func (s *Service) resolveMentions(ctx context.Context, handles []string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	seen := make(map[uuid.UUID]struct{})
	for _, handle := range handles {
		user, err := s.users.GetByUsername(ctx, handle)
		if errors.Is(err, domain.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve mention %q: %w", handle, err)
		}
		if _, ok := seen[user.ID]; ok {
			continue
		}
		seen[user.ID] = struct{}{}
		ids = append(ids, user.ID)
	}
	return ids, nil
}

func validateContent(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: content must not be empty", domain.ErrInvalidContent)
	}
	if utf8.RuneCountInString(text) > domain.MaxContentLength {
		return fmt.Errorf("%w: content exceeds %d characters", domain.ErrInvalidContent, domain.MaxContentLength)
	}
	return nil
}

func clampPage(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
