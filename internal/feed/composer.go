// Package feed assembles per-user timelines from the follow graph.
package feed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Composer struct {
	rels  domain.RelationshipStore
	posts domain.PostStore
	users domain.UserStore
}

func NewComposer(rels domain.RelationshipStore, posts domain.PostStore, users domain.UserStore) *Composer {
	return &Composer{rels: rels, posts: posts, users: users}
}

// GetFeed returns the newest non-deleted posts authored by the users the
// caller follows, each joined with its author summary. The caller's own
// posts never appear (self-follow edges cannot exist). Pagination is stable
// only while no posts are inserted or deleted between pages.
func (c *Composer) GetFeed(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.FeedItem, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	following, err := c.rels.FollowingIDs(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve following set: %w", err)
	}
	if len(following) == 0 {
		return []domain.FeedItem{}, nil
	}

	posts, err := c.posts.ListByAuthors(ctx, following, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed posts: %w", err)
	}

	authors := make([]uuid.UUID, 0, len(posts))
	seen := make(map[uuid.UUID]struct{}, len(posts))
	for _, post := range posts {
		if _, ok := seen[post.Author]; ok {
			continue
		}
		seen[post.Author] = struct{}{}
		authors = append(authors, post.Author)
	}

	summaries, err := c.users.Summaries(ctx, authors)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author summaries: %w", err)
	}

	items := make([]domain.FeedItem, 0, len(posts))
	for _, post := range posts {
		author, ok := summaries[post.Author]
		if !ok {
			author = domain.UserSummary{ID: post.Author}
		}
		items = append(items, domain.FeedItem{Post: post, Author: author})
	}
	return items, nil
}
