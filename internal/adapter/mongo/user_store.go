package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	DisplayName  string    `bson:"displayName"`
	Bio          string    `bson:"bio"`
	CreatedAt    time.Time `bson:"createdAt"`
	IsActive     bool      `bson:"isActive"`
}

func toUserDoc(user *domain.User) userDoc {
	return userDoc{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		DisplayName:  user.DisplayName,
		Bio:          user.Bio,
		CreatedAt:    user.CreatedAt,
		IsActive:     user.IsActive,
	}
}

func toDomainUser(doc userDoc) (*domain.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("malformed user id %q: %w", doc.ID, err)
	}
	return &domain.User{
		ID:           id,
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		DisplayName:  doc.DisplayName,
		Bio:          doc.Bio,
		CreatedAt:    doc.CreatedAt,
		IsActive:     doc.IsActive,
	}, nil
}

type UserStore struct {
	coll *mongo.Collection
}

func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	_, err := s.coll.InsertOne(ctx, toUserDoc(user))
	if isDuplicateOn(err, "username_unique") {
		return domain.ErrUsernameTaken
	}
	if isDuplicateOn(err, "email_unique") {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"_id": id.String(), "isActive": true})
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"username": username, "isActive": true})
}

func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	update := bson.M{"$set": bson.M{
		"displayName": user.DisplayName,
		"bio":         user.Bio,
	}}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": user.ID.String(), "isActive": true}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) Deactivate(ctx context.Context, id uuid.UUID) error {
	update := bson.M{"$set": bson.M{"isActive": false}}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id.String(), "isActive": true}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) Summaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.UserSummary, error) {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": raw}, "isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	out := make(map[uuid.UUID]domain.UserSummary, len(docs))
	for _, doc := range docs {
		user, err := toDomainUser(doc)
		if err != nil {
			return nil, err
		}
		out[user.ID] = user.Summary()
	}
	return out, nil
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return toDomainUser(doc)
}
