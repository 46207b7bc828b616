package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type relationshipDoc struct {
	ID        string    `bson:"_id"`
	Follower  string    `bson:"follower"`
	Following string    `bson:"following"`
	CreatedAt time.Time `bson:"createdAt"`
}

func toRelationshipDoc(rel *domain.Relationship) relationshipDoc {
	return relationshipDoc{
		ID:        rel.ID.String(),
		Follower:  rel.Follower.String(),
		Following: rel.Following.String(),
		CreatedAt: rel.CreatedAt,
	}
}

func toDomainRelationship(doc relationshipDoc) (domain.Relationship, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return domain.Relationship{}, fmt.Errorf("malformed relationship id %q: %w", doc.ID, err)
	}
	follower, err := uuid.Parse(doc.Follower)
	if err != nil {
		return domain.Relationship{}, fmt.Errorf("malformed follower id %q: %w", doc.Follower, err)
	}
	following, err := uuid.Parse(doc.Following)
	if err != nil {
		return domain.Relationship{}, fmt.Errorf("malformed following id %q: %w", doc.Following, err)
	}
	return domain.Relationship{
		ID:        id,
		Follower:  follower,
		Following: following,
		CreatedAt: doc.CreatedAt,
	}, nil
}

type RelationshipStore struct {
	coll *mongo.Collection
}

func (s *RelationshipStore) Insert(ctx context.Context, rel *domain.Relationship) error {
	_, err := s.coll.InsertOne(ctx, toRelationshipDoc(rel))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrAlreadyFollowing
	}
	if err != nil {
		return fmt.Errorf("failed to insert relationship: %w", err)
	}
	return nil
}

func (s *RelationshipStore) Delete(ctx context.Context, follower, following uuid.UUID) error {
	filter := bson.M{"follower": follower.String(), "following": following.String()}
	result, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrRelationshipNotFound
	}
	return nil
}

func (s *RelationshipStore) ListFollowing(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error) {
	return s.list(ctx, bson.M{"follower": user.String()}, limit, offset)
}

func (s *RelationshipStore) ListFollowers(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error) {
	return s.list(ctx, bson.M{"following": user.String()}, limit, offset)
}

func (s *RelationshipStore) FollowingIDs(ctx context.Context, user uuid.UUID) ([]uuid.UUID, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"follower": user.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to find relationships: %w", err)
	}

	var docs []relationshipDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode relationships: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(docs))
	for _, doc := range docs {
		id, err := uuid.Parse(doc.Following)
		if err != nil {
			return nil, fmt.Errorf("malformed following id %q: %w", doc.Following, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *RelationshipStore) list(ctx context.Context, filter bson.M, limit, offset int) ([]domain.Relationship, error) {
	cursor, err := s.coll.Find(ctx, filter, findPage(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to find relationships: %w", err)
	}

	var docs []relationshipDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode relationships: %w", err)
	}

	rels := make([]domain.Relationship, 0, len(docs))
	for _, doc := range docs {
		rel, err := toDomainRelationship(doc)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, nil
}
