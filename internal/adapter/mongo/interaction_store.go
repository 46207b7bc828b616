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

type commentDoc struct {
	Content   string       `bson:"content"`
	Sentiment sentimentDoc `bson:"sentiment"`
}

type interactionDoc struct {
	ID        string      `bson:"_id"`
	User      string      `bson:"user"`
	Post      string      `bson:"post"`
	Type      string      `bson:"type"`
	Comment   *commentDoc `bson:"comment,omitempty"`
	CreatedAt time.Time   `bson:"createdAt"`
}

func toInteractionDoc(interaction *domain.Interaction) interactionDoc {
	doc := interactionDoc{
		ID:        interaction.ID.String(),
		User:      interaction.User.String(),
		Post:      interaction.Post.String(),
		Type:      string(interaction.Type),
		CreatedAt: interaction.CreatedAt,
	}
	if interaction.Comment != nil {
		doc.Comment = &commentDoc{
			Content:   interaction.Comment.Content,
			Sentiment: toSentimentDoc(interaction.Comment.Sentiment),
		}
	}
	return doc
}

func toDomainInteraction(doc interactionDoc) (domain.Interaction, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return domain.Interaction{}, fmt.Errorf("malformed interaction id %q: %w", doc.ID, err)
	}
	user, err := uuid.Parse(doc.User)
	if err != nil {
		return domain.Interaction{}, fmt.Errorf("malformed user id %q: %w", doc.User, err)
	}
	post, err := uuid.Parse(doc.Post)
	if err != nil {
		return domain.Interaction{}, fmt.Errorf("malformed post id %q: %w", doc.Post, err)
	}

	interaction := domain.Interaction{
		ID:        id,
		User:      user,
		Post:      post,
		Type:      domain.InteractionType(doc.Type),
		CreatedAt: doc.CreatedAt,
	}
	if doc.Comment != nil {
		interaction.Comment = &domain.Comment{
			Content:   doc.Comment.Content,
			Sentiment: toDomainSentiment(doc.Comment.Sentiment),
		}
	}
	return interaction, nil
}

type InteractionStore struct {
	coll *mongo.Collection
}

func (s *InteractionStore) Insert(ctx context.Context, interaction *domain.Interaction) error {
	_, err := s.coll.InsertOne(ctx, toInteractionDoc(interaction))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrAlreadyLiked
	}
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	return nil
}

func (s *InteractionStore) DeleteLike(ctx context.Context, user, post uuid.UUID) error {
	filter := bson.M{"user": user.String(), "post": post.String(), "type": string(domain.InteractionLike)}
	result, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}

func (s *InteractionStore) ListComments(ctx context.Context, post uuid.UUID, limit, offset int) ([]domain.Interaction, error) {
	filter := bson.M{"post": post.String(), "type": string(domain.InteractionComment)}
	cursor, err := s.coll.Find(ctx, filter, findPage(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	var docs []interactionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	comments := make([]domain.Interaction, 0, len(docs))
	for _, doc := range docs {
		interaction, err := toDomainInteraction(doc)
		if err != nil {
			return nil, err
		}
		comments = append(comments, interaction)
	}
	return comments, nil
}

func (s *InteractionStore) CountByType(ctx context.Context, post uuid.UUID) (int, int, error) {
	likes, err := s.coll.CountDocuments(ctx, bson.M{"post": post.String(), "type": string(domain.InteractionLike)})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count likes: %w", err)
	}
	comments, err := s.coll.CountDocuments(ctx, bson.M{"post": post.String(), "type": string(domain.InteractionComment)})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return int(likes), int(comments), nil
}

func (s *InteractionStore) CountCommentsByLabel(ctx context.Context, post uuid.UUID) (map[domain.SentimentLabel]int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "post", Value: post.String()},
			{Key: "type", Value: string(domain.InteractionComment)},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$comment.sentiment.label"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate comment sentiment: %w", err)
	}

	var rows []struct {
		Label string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode comment sentiment counts: %w", err)
	}

	out := make(map[domain.SentimentLabel]int, len(rows))
	for _, row := range rows {
		out[domain.SentimentLabel(row.Label)] = row.Count
	}
	return out, nil
}
