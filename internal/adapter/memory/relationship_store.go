package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
)

type relationshipStore Store

func (s *relationshipStore) Insert(_ context.Context, rel *domain.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.relationships {
		if existing.Follower == rel.Follower && existing.Following == rel.Following {
			return domain.ErrAlreadyFollowing
		}
	}

	stored := *rel
	s.relationships[rel.ID] = &stored
	s.relSeq[rel.ID] = (*Store)(s).nextSeq()
	return nil
}

func (s *relationshipStore) Delete(_ context.Context, follower, following uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.relationships {
		if existing.Follower == follower && existing.Following == following {
			delete(s.relationships, id)
			delete(s.relSeq, id)
			return nil
		}
	}
	return domain.ErrRelationshipNotFound
}

func (s *relationshipStore) ListFollowing(_ context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error) {
	return s.list(func(r *domain.Relationship) bool { return r.Follower == user }, limit, offset)
}

func (s *relationshipStore) ListFollowers(_ context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error) {
	return s.list(func(r *domain.Relationship) bool { return r.Following == user }, limit, offset)
}

func (s *relationshipStore) FollowingIDs(_ context.Context, user uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []uuid.UUID{}
	for _, rel := range s.relationships {
		if rel.Follower == user {
			out = append(out, rel.Following)
		}
	}
	return out, nil
}

func (s *relationshipStore) list(match func(*domain.Relationship) bool, limit, offset int) ([]domain.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Relationship{}
	for _, rel := range s.relationships {
		if match(rel) {
			out = append(out, *rel)
		}
	}
	sortNewestFirst(out, func(r domain.Relationship) (int64, int64) {
		return r.CreatedAt.UnixNano(), s.relSeq[r.ID]
	})
	return paginate(out, limit, offset), nil
}
