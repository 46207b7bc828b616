package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
)

type interactionStore Store

func (s *interactionStore) Insert(_ context.Context, interaction *domain.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interaction.Type == domain.InteractionLike {
		for _, existing := range s.interactions {
			if existing.Type == domain.InteractionLike &&
				existing.User == interaction.User &&
				existing.Post == interaction.Post {
				return domain.ErrAlreadyLiked
			}
		}
	}

	stored := copyInteraction(interaction)
	s.interactions[interaction.ID] = &stored
	s.interactionSeq[interaction.ID] = (*Store)(s).nextSeq()
	return nil
}

func (s *interactionStore) DeleteLike(_ context.Context, user, post uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.interactions {
		if existing.Type == domain.InteractionLike && existing.User == user && existing.Post == post {
			delete(s.interactions, id)
			delete(s.interactionSeq, id)
			return nil
		}
	}
	return domain.ErrLikeNotFound
}

func (s *interactionStore) ListComments(_ context.Context, post uuid.UUID, limit, offset int) ([]domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Interaction{}
	for _, interaction := range s.interactions {
		if interaction.Type == domain.InteractionComment && interaction.Post == post {
			out = append(out, copyInteraction(interaction))
		}
	}
	sortNewestFirst(out, func(i domain.Interaction) (int64, int64) {
		return i.CreatedAt.UnixNano(), s.interactionSeq[i.ID]
	})
	return paginate(out, limit, offset), nil
}

func (s *interactionStore) CountByType(_ context.Context, post uuid.UUID) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	likes, comments := 0, 0
	for _, interaction := range s.interactions {
		if interaction.Post != post {
			continue
		}
		switch interaction.Type {
		case domain.InteractionLike:
			likes++
		case domain.InteractionComment:
			comments++
		}
	}
	return likes, comments, nil
}

func (s *interactionStore) CountCommentsByLabel(_ context.Context, post uuid.UUID) (map[domain.SentimentLabel]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[domain.SentimentLabel]int)
	for _, interaction := range s.interactions {
		if interaction.Type == domain.InteractionComment && interaction.Post == post && interaction.Comment != nil {
			out[interaction.Comment.Sentiment.Label]++
		}
	}
	return out, nil
}
