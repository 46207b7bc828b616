package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type sentimentDoc struct {
	Label      string  `bson:"label"`
	Confidence float64 `bson:"confidence"`
	Positive   int     `bson:"positive"`
	Negative   int     `bson:"negative"`
	Neutral    int     `bson:"neutral"`
}

func toSentimentDoc(result domain.SentimentResult) sentimentDoc {
	return sentimentDoc{
		Label:      string(result.Label),
		Confidence: result.Confidence,
		Positive:   result.Scores.Positive,
		Negative:   result.Scores.Negative,
		Neutral:    result.Scores.Neutral,
	}
}

func toDomainSentiment(doc sentimentDoc) domain.SentimentResult {
	return domain.SentimentResult{
		Label:      domain.SentimentLabel(doc.Label),
		Confidence: doc.Confidence,
		Scores: domain.SentimentScores{
			Positive: doc.Positive,
			Negative: doc.Negative,
			Neutral:  doc.Neutral,
		},
	}
}

type postDoc struct {
	ID        string       `bson:"_id"`
	Author    string       `bson:"author"`
	Content   string       `bson:"content"`
	Hashtags  []string     `bson:"hashtags"`
	Mentions  []string     `bson:"mentions"`
	Likes     int          `bson:"likes"`
	Comments  int          `bson:"comments"`
	Sentiment sentimentDoc `bson:"sentiment"`
	CreatedAt time.Time    `bson:"createdAt"`
	IsDeleted bool         `bson:"isDeleted"`
}

func toPostDoc(post *domain.Post) postDoc {
	mentions := make([]string, len(post.Mentions))
	for i, id := range post.Mentions {
		mentions[i] = id.String()
	}
	return postDoc{
		ID:        post.ID.String(),
		Author:    post.Author.String(),
		Content:   post.Content,
		Hashtags:  append([]string{}, post.Hashtags...),
		Mentions:  mentions,
		Likes:     post.Likes,
		Comments:  post.Comments,
		Sentiment: toSentimentDoc(post.Sentiment),
		CreatedAt: post.CreatedAt,
		IsDeleted: post.IsDeleted,
	}
}

func toDomainPost(doc postDoc) (domain.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return domain.Post{}, fmt.Errorf("malformed post id %q: %w", doc.ID, err)
	}
	author, err := uuid.Parse(doc.Author)
	if err != nil {
		return domain.Post{}, fmt.Errorf("malformed author id %q: %w", doc.Author, err)
	}
	mentions := make([]uuid.UUID, 0, len(doc.Mentions))
	for _, raw := range doc.Mentions {
		mention, err := uuid.Parse(raw)
		if err != nil {
			return domain.Post{}, fmt.Errorf("malformed mention id %q: %w", raw, err)
		}
		mentions = append(mentions, mention)
	}
	hashtags := doc.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	return domain.Post{
		ID:        id,
		Author:    author,
		Content:   doc.Content,
		Hashtags:  hashtags,
		Mentions:  mentions,
		Likes:     doc.Likes,
		Comments:  doc.Comments,
		Sentiment: toDomainSentiment(doc.Sentiment),
		CreatedAt: doc.CreatedAt,
		IsDeleted: doc.IsDeleted,
	}, nil
}

type PostStore struct {
	coll *mongo.Collection
}

func (s *PostStore) Insert(ctx context.Context, post *domain.Post) error {
	if _, err := s.coll.InsertOne(ctx, toPostDoc(post)); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (s *PostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var doc postDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id.String(), "isDeleted": false}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	post, err := toDomainPost(doc)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	update := bson.M{"$set": bson.M{"isDeleted": true}}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id.String(), "isDeleted": false}, update)
	if err != nil {
		return fmt.Errorf("failed to soft-delete post: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// IncrementCounters applies atomic $inc deltas. Negative deltas carry a
// floor guard in the filter so a counter already at zero never goes
// negative; a floored decrement is a silent no-op.
func (s *PostStore) IncrementCounters(ctx context.Context, id uuid.UUID, likesDelta, commentsDelta int) error {
	filter := bson.M{"_id": id.String()}
	if likesDelta < 0 {
		filter["likes"] = bson.M{"$gte": -likesDelta}
	}
	if commentsDelta < 0 {
		filter["comments"] = bson.M{"$gte": -commentsDelta}
	}

	update := bson.M{"$inc": bson.M{"likes": likesDelta, "comments": commentsDelta}}
	result, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to increment counters: %w", err)
	}
	if result.MatchedCount == 0 && likesDelta >= 0 && commentsDelta >= 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (s *PostStore) SetCounters(ctx context.Context, id uuid.UUID, likes, comments int) error {
	update := bson.M{"$set": bson.M{"likes": likes, "comments": comments}}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to set counters: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (s *PostStore) ListByAuthor(ctx context.Context, author uuid.UUID, limit, offset int) ([]domain.Post, error) {
	return s.list(ctx, bson.M{"author": author.String()}, limit, offset)
}

func (s *PostStore) ListByAuthors(ctx context.Context, authors []uuid.UUID, limit, offset int) ([]domain.Post, error) {
	raw := make([]string, len(authors))
	for i, author := range authors {
		raw[i] = author.String()
	}
	return s.list(ctx, bson.M{"author": bson.M{"$in": raw}}, limit, offset)
}

func (s *PostStore) ListBySentiment(ctx context.Context, label domain.SentimentLabel, limit, offset int) ([]domain.Post, error) {
	return s.list(ctx, bson.M{"sentiment.label": string(label)}, limit, offset)
}

func (s *PostStore) ListRecent(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	return s.list(ctx, bson.M{}, limit, offset)
}

func (s *PostStore) Search(ctx context.Context, text string, limit, offset int) ([]domain.Post, error) {
	pattern := bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}
	return s.list(ctx, bson.M{"content": pattern}, limit, offset)
}

func (s *PostStore) ListSince(ctx context.Context, since time.Time) ([]domain.Post, error) {
	filter := bson.M{"isDeleted": false}
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gte": since}
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}
	return decodePosts(ctx, cursor)
}

func (s *PostStore) CountBySentiment(ctx context.Context) (map[domain.SentimentLabel]int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "isDeleted", Value: false}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$sentiment.label"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sentiment counts: %w", err)
	}

	var rows []struct {
		Label string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode sentiment counts: %w", err)
	}

	out := make(map[domain.SentimentLabel]int, len(rows))
	for _, row := range rows {
		out[domain.SentimentLabel(row.Label)] = row.Count
	}
	return out, nil
}

func (s *PostStore) list(ctx context.Context, filter bson.M, limit, offset int) ([]domain.Post, error) {
	filter["isDeleted"] = false
	cursor, err := s.coll.Find(ctx, filter, findPage(limit, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}
	return decodePosts(ctx, cursor)
}

func decodePosts(ctx context.Context, cursor *mongo.Cursor) ([]domain.Post, error) {
	var docs []postDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(docs))
	for _, doc := range docs {
		post, err := toDomainPost(doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}
