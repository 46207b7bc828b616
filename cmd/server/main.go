package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ripple-social/ripple/internal/account"
	"github.com/ripple-social/ripple/internal/adapter/httpserver"
	"github.com/ripple-social/ripple/internal/adapter/memory"
	adaptermongo "github.com/ripple-social/ripple/internal/adapter/mongo"
	"github.com/ripple-social/ripple/internal/adapter/rediscache"
	"github.com/ripple-social/ripple/internal/domain"
	"github.com/ripple-social/ripple/internal/engagement"
	"github.com/ripple-social/ripple/internal/feed"
	"github.com/ripple-social/ripple/internal/graph"
	"github.com/ripple-social/ripple/internal/platform/config"
	"github.com/ripple-social/ripple/internal/platform/logging"
	"github.com/ripple-social/ripple/internal/posts"
	"github.com/ripple-social/ripple/internal/sentiment"
	"github.com/ripple-social/ripple/internal/trending"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type stores struct {
	users         domain.UserStore
	posts         domain.PostStore
	interactions  domain.InteractionStore
	relationships domain.RelationshipStore
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupMongo(cfg *config.Config) (*mongo.Client, stores, httpserver.HealthCheck) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := adaptermongo.Connect(ctx, cfg.MongoURL)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	store := adaptermongo.NewStore(client.Database(cfg.MongoDatabase))
	if err := store.EnsureIndexes(ctx); err != nil {
		slog.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	check := httpserver.HealthCheck{
		Name:  "mongo",
		Check: func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
	}

	return client, stores{
		users:         store.Users(),
		posts:         store.Posts(),
		interactions:  store.Interactions(),
		relationships: store.Relationships(),
	}, check
}

func setupRedis(cfg *config.Config) (*goredis.Client, httpserver.HealthCheck) {
	opts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", "error", err)
		os.Exit(1)
	}

	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	check := httpserver.HealthCheck{
		Name:  "redis",
		Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}

	return client, check
}

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "store", cfg.StoreBackend)

	var (
		st           stores
		healthChecks []httpserver.HealthCheck
	)
	switch cfg.StoreBackend {
	case "mongo":
		client, mongoStores, check := setupMongo(cfg)
		defer func() { _ = client.Disconnect(context.Background()) }()
		st = mongoStores
		healthChecks = append(healthChecks, check)
	case "memory":
		mem := memory.NewStore()
		st = stores{
			users:         mem.Users(),
			posts:         mem.Posts(),
			interactions:  mem.Interactions(),
			relationships: mem.Relationships(),
		}
	}

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		client, check := setupRedis(cfg)
		defer func() { _ = client.Close() }()
		redisClient = client
		healthChecks = append(healthChecks, check)
	}

	classifier := sentiment.NewClassifier(sentiment.DefaultLexicon())

	accountSvc := account.NewService(st.users, clock)
	postSvc := posts.NewService(st.posts, st.users, classifier, clock)
	ledger := engagement.NewLedger(st.posts, st.interactions, classifier, clock)
	socialGraph := graph.NewGraph(st.relationships, clock)
	composer := feed.NewComposer(st.relationships, st.posts, st.users)
	aggregator := trending.NewAggregator(st.posts, clock, cfg.TrendingWindow)

	var trendingSvc interface {
		GetTrending(ctx context.Context, limit int) ([]trending.Tag, error)
	} = aggregator
	if redisClient != nil {
		trendingSvc = rediscache.NewTrendingCache(redisClient, aggregator, cfg.TrendingCacheTTL, clock)
	}

	srv := httpserver.NewServer(cfg, httpserver.Services{
		Accounts: accountSvc,
		Posts:    postSvc,
		Ledger:   ledger,
		Graph:    socialGraph,
		Feed:     composer,
		Trending: trendingSvc,
		Stats:    aggregator,
	}, healthChecks)

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
