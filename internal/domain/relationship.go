package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Relationship is a directed follow edge. Invariant: Follower != Following,
// and the (follower, following) pair is unique.
type Relationship struct {
	ID        uuid.UUID `json:"id"`
	Follower  uuid.UUID `json:"follower"`
	Following uuid.UUID `json:"following"`
	CreatedAt time.Time `json:"createdAt"`
}

// RelationshipStore persists the follow graph. Edge uniqueness is enforced by
// the store's unique index on (follower, following).
type RelationshipStore interface {
	// Insert stores a new edge. Returns ErrAlreadyFollowing on a duplicate.
	Insert(ctx context.Context, rel *Relationship) error
	// Delete removes the follower->following edge. Returns
	// ErrRelationshipNotFound when the edge does not exist.
	Delete(ctx context.Context, follower, following uuid.UUID) error

	ListFollowing(ctx context.Context, user uuid.UUID, limit, offset int) ([]Relationship, error)
	ListFollowers(ctx context.Context, user uuid.UUID, limit, offset int) ([]Relationship, error)
	// FollowingIDs resolves the full set of users the given user follows.
	FollowingIDs(ctx context.Context, user uuid.UUID) ([]uuid.UUID, error)
}
