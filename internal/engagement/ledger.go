// Package engagement records like/comment interactions and keeps the target
// post's counters equal to the count of underlying interaction records.
//
// The dual write (interaction insert + counter increment) leans on two
// storage primitives: a uniqueness constraint on (user, post, type=like) and
// an atomic increment. There is no read-modify-write anywhere in this
// package. If an increment fails after a successful insert, the counters are
// reconciled from the interaction records instead of being left drifted.
package engagement

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/ripple-social/ripple/internal/adapter/metrics"
	"github.com/ripple-social/ripple/internal/domain"
	"github.com/ripple-social/ripple/internal/sentiment"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Ledger struct {
	posts        domain.PostStore
	interactions domain.InteractionStore
	classifier   *sentiment.Classifier
	clock        clockwork.Clock
}

func NewLedger(posts domain.PostStore, interactions domain.InteractionStore, classifier *sentiment.Classifier, clock clockwork.Clock) *Ledger {
	return &Ledger{posts: posts, interactions: interactions, classifier: classifier, clock: clock}
}

// Like records a like by user on post. A second like of the same post by the
// same user fails with domain.ErrAlreadyLiked and leaves the counter
// untouched.
func (l *Ledger) Like(ctx context.Context, user, post uuid.UUID) error {
	if _, err := l.posts.GetByID(ctx, post); err != nil {
		return err
	}

	interaction := &domain.Interaction{
		ID:        uuid.New(),
		User:      user,
		Post:      post,
		Type:      domain.InteractionLike,
		CreatedAt: l.clock.Now().UTC(),
	}
	if err := l.interactions.Insert(ctx, interaction); err != nil {
		return err
	}

	metrics.InteractionsRecorded.WithLabelValues(string(domain.InteractionLike)).Inc()
	return l.bumpCounters(ctx, post, 1, 0)
}

// Unlike removes the user's like and decrements the counter (floor zero).
func (l *Ledger) Unlike(ctx context.Context, user, post uuid.UUID) error {
	if err := l.interactions.DeleteLike(ctx, user, post); err != nil {
		return err
	}
	return l.bumpCounters(ctx, post, -1, 0)
}

// Comment classifies and records a comment on post. Content follows the same
// 1-280 code point rule as posts.
func (l *Ledger) Comment(ctx context.Context, user, post uuid.UUID, text string) (*domain.Interaction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment must not be empty", domain.ErrInvalidContent)
	}
	if utf8.RuneCountInString(text) > domain.MaxContentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", domain.ErrInvalidContent, domain.MaxContentLength)
	}

	if _, err := l.posts.GetByID(ctx, post); err != nil {
		return nil, err
	}

	result, err := l.classifier.Classify(text)
	if err != nil {
		return nil, err
	}

	interaction := &domain.Interaction{
		ID:        uuid.New(),
		User:      user,
		Post:      post,
		Type:      domain.InteractionComment,
		Comment:   &domain.Comment{Content: text, Sentiment: result},
		CreatedAt: l.clock.Now().UTC(),
	}
	if err := l.interactions.Insert(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	metrics.InteractionsRecorded.WithLabelValues(string(domain.InteractionComment)).Inc()
	metrics.SentimentAssigned.WithLabelValues(string(result.Label)).Inc()

	if err := l.bumpCounters(ctx, post, 0, 1); err != nil {
		return nil, err
	}
	return interaction, nil
}

// ListComments returns a post's comments, newest first.
func (l *Ledger) ListComments(ctx context.Context, post uuid.UUID, limit, offset int) ([]domain.Interaction, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return l.interactions.ListComments(ctx, post, limit, offset)
}

// Breakdown summarizes a post's comment sentiment.
type Breakdown struct {
	Positive int                   `json:"positive"`
	Negative int                   `json:"negative"`
	Neutral  int                   `json:"neutral"`
	Total    int                   `json:"total"`
	Overall  domain.SentimentLabel `json:"overallSentiment"`
}

// overallPrecedence is the fixed tie-break order for the overall label.
var overallPrecedence = []domain.SentimentLabel{
	domain.SentimentPositive,
	domain.SentimentNeutral,
	domain.SentimentNegative,
}

// CommentSentimentBreakdown counts a post's comments per sentiment label. The
// overall label is the most frequent one; ties resolve by the fixed
// positive > neutral > negative precedence.
func (l *Ledger) CommentSentimentBreakdown(ctx context.Context, post uuid.UUID) (*Breakdown, error) {
	if _, err := l.posts.GetByID(ctx, post); err != nil {
		return nil, err
	}

	counts, err := l.interactions.CountCommentsByLabel(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to count comment sentiment: %w", err)
	}

	breakdown := &Breakdown{
		Positive: counts[domain.SentimentPositive],
		Negative: counts[domain.SentimentNegative],
		Neutral:  counts[domain.SentimentNeutral],
		Overall:  domain.SentimentPositive,
	}
	breakdown.Total = breakdown.Positive + breakdown.Negative + breakdown.Neutral

	for _, label := range overallPrecedence {
		if counts[label] > counts[breakdown.Overall] {
			breakdown.Overall = label
		}
	}
	return breakdown, nil
}

// Reconcile recomputes a post's counters from its interaction records. Used
// when a counter write after a successful interaction write could not be
// confirmed.
func (l *Ledger) Reconcile(ctx context.Context, post uuid.UUID) error {
	likes, comments, err := l.interactions.CountByType(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to count interactions: %w", err)
	}
	if err := l.posts.SetCounters(ctx, post, likes, comments); err != nil {
		return fmt.Errorf("failed to set counters: %w", err)
	}
	metrics.CounterReconciliations.Inc()
	return nil
}

func (l *Ledger) bumpCounters(ctx context.Context, post uuid.UUID, likesDelta, commentsDelta int) error {
	err := l.posts.IncrementCounters(ctx, post, likesDelta, commentsDelta)
	if err == nil {
		return nil
	}
	// The interaction record is already durable; repair the counters from it
	// rather than surfacing a drifted state.
	if rerr := l.Reconcile(ctx, post); rerr != nil {
		return fmt.Errorf("counter increment failed (%v) and reconciliation failed: %w", err, rerr)
	}
	return nil
}
