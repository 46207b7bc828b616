package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxContentLength is the post and comment length limit in code points.
const MaxContentLength = 280

type Post struct {
	ID        uuid.UUID       `json:"id"`
	Author    uuid.UUID       `json:"author"`
	Content   string          `json:"content"`
	Hashtags  []string        `json:"hashtags"`
	Mentions  []uuid.UUID     `json:"mentions"`
	Likes     int             `json:"likes"`
	Comments  int             `json:"comments"`
	Sentiment SentimentResult `json:"sentiment"`
	CreatedAt time.Time       `json:"createdAt"`
	IsDeleted bool            `json:"-"`
}

// FeedItem is a post joined with its author summary at read time.
type FeedItem struct {
	Post   Post        `json:"post"`
	Author UserSummary `json:"author"`
}

// PostStore persists posts. Content is immutable after insert; the only
// lifecycle mutations are the soft-delete flag and the engagement counters.
// All list operations exclude soft-deleted posts and order newest first.
type PostStore interface {
	Insert(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// IncrementCounters applies atomic deltas to the likes/comments counters.
	// Negative deltas floor at zero: a decrement of a counter already at zero
	// is a no-op, never a negative value. Implementations must use an atomic
	// increment primitive, not read-modify-write.
	IncrementCounters(ctx context.Context, id uuid.UUID, likesDelta, commentsDelta int) error
	// SetCounters overwrites both counters, used by ledger reconciliation.
	SetCounters(ctx context.Context, id uuid.UUID, likes, comments int) error

	ListByAuthor(ctx context.Context, author uuid.UUID, limit, offset int) ([]Post, error)
	ListByAuthors(ctx context.Context, authors []uuid.UUID, limit, offset int) ([]Post, error)
	ListBySentiment(ctx context.Context, label SentimentLabel, limit, offset int) ([]Post, error)
	ListRecent(ctx context.Context, limit, offset int) ([]Post, error)
	Search(ctx context.Context, text string, limit, offset int) ([]Post, error)

	// ListSince returns all non-deleted posts created at or after the given
	// instant. A zero time means all posts.
	ListSince(ctx context.Context, since time.Time) ([]Post, error)
	// CountBySentiment counts non-deleted posts per sentiment label.
	CountBySentiment(ctx context.Context) (map[SentimentLabel]int, error)
}
