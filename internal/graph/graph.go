// Package graph maintains the directed follow edges between users.
package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/ripple-social/ripple/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Graph struct {
	rels  domain.RelationshipStore
	clock clockwork.Clock
}

func NewGraph(rels domain.RelationshipStore, clock clockwork.Clock) *Graph {
	return &Graph{rels: rels, clock: clock}
}

// Follow inserts the follower->following edge. Self-follows fail with
// domain.ErrSelfFollow; duplicates with domain.ErrAlreadyFollowing.
func (g *Graph) Follow(ctx context.Context, follower, following uuid.UUID) error {
	if follower == following {
		return domain.ErrSelfFollow
	}
	rel := &domain.Relationship{
		ID:        uuid.New(),
		Follower:  follower,
		Following: following,
		CreatedAt: g.clock.Now().UTC(),
	}
	return g.rels.Insert(ctx, rel)
}

// Unfollow removes the edge. A missing edge fails with
// domain.ErrRelationshipNotFound.
func (g *Graph) Unfollow(ctx context.Context, follower, following uuid.UUID) error {
	return g.rels.Delete(ctx, follower, following)
}

// ListFollowing returns the users the given user follows, newest edge first.
func (g *Graph) ListFollowing(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error) {
	return g.rels.ListFollowing(ctx, user, clampPage(limit), clampOffset(offset))
}

// ListFollowers returns the users following the given user, newest edge first.
func (g *Graph) ListFollowers(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error) {
	return g.rels.ListFollowers(ctx, user, clampPage(limit), clampOffset(offset))
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
