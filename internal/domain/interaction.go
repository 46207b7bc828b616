package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type InteractionType string

const (
	InteractionLike    InteractionType = "like"
	InteractionComment InteractionType = "comment"
)

// Comment is the payload carried by comment interactions.
type Comment struct {
	Content   string          `json:"content"`
	Sentiment SentimentResult `json:"sentiment"`
}

// Interaction records a single like or comment against a post. A (user, post)
// pair may hold at most one like; comments are unbounded.
type Interaction struct {
	ID        uuid.UUID       `json:"id"`
	User      uuid.UUID       `json:"user"`
	Post      uuid.UUID       `json:"post"`
	Type      InteractionType `json:"type"`
	Comment   *Comment        `json:"comment,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// InteractionStore persists interaction records. Like uniqueness is enforced
// by the store (unique index on user+post for type=like), never by a
// read-then-insert sequence in the caller.
type InteractionStore interface {
	// Insert stores an interaction. Returns ErrAlreadyLiked when a duplicate
	// like violates the uniqueness constraint.
	Insert(ctx context.Context, interaction *Interaction) error
	// DeleteLike removes the like of user on post. Returns ErrLikeNotFound
	// when no such like exists.
	DeleteLike(ctx context.Context, user, post uuid.UUID) error

	// ListComments returns the comment interactions for a post, newest first.
	ListComments(ctx context.Context, post uuid.UUID, limit, offset int) ([]Interaction, error)
	// CountByType counts the like and comment interactions for a post. This
	// is the authoritative source the post counters are reconciled against.
	CountByType(ctx context.Context, post uuid.UUID) (likes, comments int, err error)
	// CountCommentsByLabel counts a post's comments per sentiment label.
	CountCommentsByLabel(ctx context.Context, post uuid.UUID) (map[SentimentLabel]int, error)
}
