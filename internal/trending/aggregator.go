// Package trending aggregates hashtag frequencies and sentiment counts over
// the non-deleted posts.
package trending

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ripple-social/ripple/internal/domain"
)

const defaultTrendingLimit = 10

// Tag is a hashtag with its occurrence count.
type Tag struct {
	Hashtag string `json:"hashtag"`
	Count   int    `json:"count"`
}

// Stats reports post counts and percentages per sentiment label.
type Stats struct {
	Counts      map[domain.SentimentLabel]int     `json:"counts"`
	Percentages map[domain.SentimentLabel]float64 `json:"percentages"`
	Total       int                               `json:"total"`
}

type Aggregator struct {
	posts  domain.PostStore
	clock  clockwork.Clock
	window time.Duration
}

// NewAggregator builds an aggregator. A zero window means all time.
func NewAggregator(posts domain.PostStore, clock clockwork.Clock, window time.Duration) *Aggregator {
	return &Aggregator{posts: posts, clock: clock, window: window}
}

// GetTrending counts hashtag occurrences across the non-deleted posts in the
// window and returns the top limit tags, ordered by count descending and
// hashtag ascending on ties. Repeated use of a hashtag within one post counts
// each occurrence.
func (a *Aggregator) GetTrending(ctx context.Context, limit int) ([]Tag, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	var since time.Time
	if a.window > 0 {
		since = a.clock.Now().UTC().Add(-a.window)
	}

	posts, err := a.posts.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for trending: %w", err)
	}

	counts := make(map[string]int)
	for _, post := range posts {
		for _, tag := range post.Hashtags {
			counts[tag]++
		}
	}

	tags := make([]Tag, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, Tag{Hashtag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Hashtag < tags[j].Hashtag
	})

	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

// GetSentimentStats counts non-deleted posts per sentiment label and derives
// percentages (two decimal places; zero when there are no posts).
func (a *Aggregator) GetSentimentStats(ctx context.Context) (*Stats, error) {
	counts, err := a.posts.CountBySentiment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts by sentiment: %w", err)
	}

	stats := &Stats{
		Counts:      make(map[domain.SentimentLabel]int, 3),
		Percentages: make(map[domain.SentimentLabel]float64, 3),
	}
	labels := []domain.SentimentLabel{domain.SentimentPositive, domain.SentimentNegative, domain.SentimentNeutral}
	for _, label := range labels {
		stats.Counts[label] = counts[label]
		stats.Total += counts[label]
	}
	for _, label := range labels {
		if stats.Total == 0 {
			stats.Percentages[label] = 0
			continue
		}
		pct := float64(stats.Counts[label]) / float64(stats.Total) * 100
		stats.Percentages[label] = math.Round(pct*100) / 100
	}
	return stats, nil
}
