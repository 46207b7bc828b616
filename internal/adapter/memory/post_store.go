package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
)

type postStore Store

func (s *postStore) Insert(_ context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyPost(post)
	s.posts[post.ID] = &stored
	s.postSeq[post.ID] = (*Store)(s).nextSeq()
	return nil
}

func (s *postStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok || post.IsDeleted {
		return nil, domain.ErrPostNotFound
	}
	out := copyPost(post)
	return &out, nil
}

func (s *postStore) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok || post.IsDeleted {
		return domain.ErrPostNotFound
	}
	post.IsDeleted = true
	return nil
}

func (s *postStore) IncrementCounters(_ context.Context, id uuid.UUID, likesDelta, commentsDelta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	post.Likes = clampZero(post.Likes + likesDelta)
	post.Comments = clampZero(post.Comments + commentsDelta)
	return nil
}

func (s *postStore) SetCounters(_ context.Context, id uuid.UUID, likes, comments int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	post.Likes = likes
	post.Comments = comments
	return nil
}

func (s *postStore) ListByAuthor(ctx context.Context, author uuid.UUID, limit, offset int) ([]domain.Post, error) {
	return s.list(func(p *domain.Post) bool { return p.Author == author }, limit, offset)
}

func (s *postStore) ListByAuthors(_ context.Context, authors []uuid.UUID, limit, offset int) ([]domain.Post, error) {
	set := make(map[uuid.UUID]struct{}, len(authors))
	for _, a := range authors {
		set[a] = struct{}{}
	}
	return s.list(func(p *domain.Post) bool {
		_, ok := set[p.Author]
		return ok
	}, limit, offset)
}

func (s *postStore) ListBySentiment(_ context.Context, label domain.SentimentLabel, limit, offset int) ([]domain.Post, error) {
	return s.list(func(p *domain.Post) bool { return p.Sentiment.Label == label }, limit, offset)
}

func (s *postStore) ListRecent(_ context.Context, limit, offset int) ([]domain.Post, error) {
	return s.list(func(*domain.Post) bool { return true }, limit, offset)
}

func (s *postStore) Search(_ context.Context, text string, limit, offset int) ([]domain.Post, error) {
	return s.list(func(p *domain.Post) bool { return containsFold(p.Content, text) }, limit, offset)
}

func (s *postStore) ListSince(_ context.Context, since time.Time) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Post{}
	for _, post := range s.posts {
		if post.IsDeleted {
			continue
		}
		if !since.IsZero() && post.CreatedAt.Before(since) {
			continue
		}
		out = append(out, copyPost(post))
	}
	s.sortPosts(out)
	return out, nil
}

func (s *postStore) CountBySentiment(_ context.Context) (map[domain.SentimentLabel]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[domain.SentimentLabel]int)
	for _, post := range s.posts {
		if !post.IsDeleted {
			out[post.Sentiment.Label]++
		}
	}
	return out, nil
}

func (s *postStore) list(match func(*domain.Post) bool, limit, offset int) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Post{}
	for _, post := range s.posts {
		if !post.IsDeleted && match(post) {
			out = append(out, copyPost(post))
		}
	}
	s.sortPosts(out)
	return paginate(out, limit, offset), nil
}

func (s *postStore) sortPosts(posts []domain.Post) {
	sortNewestFirst(posts, func(p domain.Post) (int64, int64) {
		return p.CreatedAt.UnixNano(), s.postSeq[p.ID]
	})
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
