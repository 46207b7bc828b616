// Package mongo implements the storage ports on a MongoDB document store.
//
// The invariants the services lean on live here: unique indexes on username,
// email, (follower, following) and the per-user like per post, and $inc-based
// counter movement. Counter updates never read-modify-write.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection         = "users"
	postsCollection         = "posts"
	interactionsCollection  = "interactions"
	relationshipsCollection = "relationships"

	connectTimeout = 10 * time.Second
)

// Connect establishes the client and verifies the connection with a ping.
func Connect(ctx context.Context, url string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	slog.Info("Mongo connected")
	return client, nil
}

// Store bundles the four collection-backed store implementations around one
// database handle, constructed once at process start and passed by reference.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Users() *UserStore { return &UserStore{coll: s.db.Collection(usersCollection)} }

func (s *Store) Posts() *PostStore { return &PostStore{coll: s.db.Collection(postsCollection)} }

func (s *Store) Interactions() *InteractionStore {
	return &InteractionStore{coll: s.db.Collection(interactionsCollection)}
}

func (s *Store) Relationships() *RelationshipStore {
	return &RelationshipStore{coll: s.db.Collection(relationshipsCollection)}
}

// EnsureIndexes creates the indexes the storage invariants depend on.
// Idempotent; safe to run at every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	users := s.db.Collection(usersCollection)
	if _, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("username_unique")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
	}); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	posts := s.db.Collection(postsCollection)
	if _, err := posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "sentiment.label", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}

	interactions := s.db.Collection(interactionsCollection)
	if _, err := interactions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user", Value: 1}, {Key: "post", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("like_unique").
				SetPartialFilterExpression(bson.D{{Key: "type", Value: "like"}}),
		},
		{Keys: bson.D{{Key: "post", Value: 1}, {Key: "type", Value: 1}, {Key: "createdAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create interaction indexes: %w", err)
	}

	relationships := s.db.Collection(relationshipsCollection)
	if _, err := relationships.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "follower", Value: 1}, {Key: "following", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("edge_unique"),
		},
		{Keys: bson.D{{Key: "following", Value: 1}, {Key: "createdAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create relationship indexes: %w", err)
	}

	return nil
}

// isDuplicateOn reports whether err is a duplicate-key error on the named
// index.
func isDuplicateOn(err error, indexName string) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), indexName)
}

func findPage(limit, offset int) *options.FindOptionsBuilder {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
}
