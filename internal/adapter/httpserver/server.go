// Package httpserver maps HTTP requests onto the application services and
// renders {success, data|message}-shaped responses. It owns no business
// rules beyond request decoding and session handling.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/ripple-social/ripple/internal/account"
	"github.com/ripple-social/ripple/internal/domain"
	"github.com/ripple-social/ripple/internal/engagement"
	"github.com/ripple-social/ripple/internal/platform/config"
	"github.com/ripple-social/ripple/internal/trending"
)

type accountService interface {
	Register(ctx context.Context, params account.RegisterParams) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, displayName, bio string) (*domain.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type postService interface {
	Create(ctx context.Context, author uuid.UUID, text string) (*domain.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	Delete(ctx context.Context, id, requester uuid.UUID) error
	ListByAuthor(ctx context.Context, author uuid.UUID, limit, offset int) ([]domain.Post, error)
	ListBySentiment(ctx context.Context, label domain.SentimentLabel, limit, offset int) ([]domain.Post, error)
	ListRecent(ctx context.Context, limit, offset int) ([]domain.Post, error)
	Search(ctx context.Context, text string, limit, offset int) ([]domain.Post, error)
}

type ledgerService interface {
	Like(ctx context.Context, user, post uuid.UUID) error
	Unlike(ctx context.Context, user, post uuid.UUID) error
	Comment(ctx context.Context, user, post uuid.UUID, text string) (*domain.Interaction, error)
	ListComments(ctx context.Context, post uuid.UUID, limit, offset int) ([]domain.Interaction, error)
	CommentSentimentBreakdown(ctx context.Context, post uuid.UUID) (*engagement.Breakdown, error)
}

type graphService interface {
	Follow(ctx context.Context, follower, following uuid.UUID) error
	Unfollow(ctx context.Context, follower, following uuid.UUID) error
	ListFollowing(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error)
	ListFollowers(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error)
}

type feedService interface {
	GetFeed(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.FeedItem, error)
}

type trendingService interface {
	GetTrending(ctx context.Context, limit int) ([]trending.Tag, error)
}

type statsService interface {
	GetSentimentStats(ctx context.Context) (*trending.Stats, error)
}

// HealthCheck is a named readiness check.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	accounts accountService
	posts    postService
	ledger   ledgerService
	graph    graphService
	feed     feedService
	trending trendingService
	stats    statsService

	sessionStore *sessions.CookieStore
	healthChecks []HealthCheck
	startTime    time.Time
}

type Services struct {
	Accounts accountService
	Posts    postService
	Ledger   ledgerService
	Graph    graphService
	Feed     feedService
	Trending trendingService
	Stats    statsService
}

func NewServer(cfg *config.Config, svcs Services, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteStrictMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		accounts:     svcs.Accounts,
		posts:        svcs.Posts,
		ledger:       svcs.Ledger,
		graph:        svcs.Graph,
		feed:         svcs.Feed,
		trending:     svcs.Trending,
		stats:        svcs.Stats,
		sessionStore: sessionStore,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}
	srv.registerRoutes()
	return srv
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
