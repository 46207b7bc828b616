package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/ripple-social/ripple/internal/account"
	"github.com/ripple-social/ripple/internal/domain"
	"github.com/ripple-social/ripple/internal/engagement"
	"github.com/ripple-social/ripple/internal/platform/config"
	apperrors "github.com/ripple-social/ripple/internal/platform/errors"
	"github.com/ripple-social/ripple/internal/trending"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockAccountService struct {
	registerFn      func(ctx context.Context, params account.RegisterParams) (*domain.User, error)
	authenticateFn  func(ctx context.Context, username, password string) (*domain.User, error)
	getProfileFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	updateProfileFn func(ctx context.Context, id uuid.UUID, displayName, bio string) (*domain.User, error)
	deactivateFn    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAccountService) Register(ctx context.Context, params account.RegisterParams) (*domain.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, username, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *mockAccountService) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockAccountService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockAccountService) UpdateProfile(ctx context.Context, id uuid.UUID, displayName, bio string) (*domain.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, id, displayName, bio)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAccountService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, id)
	}
	return nil
}

type mockPostService struct {
	createFn          func(ctx context.Context, author uuid.UUID, text string) (*domain.Post, error)
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	deleteFn          func(ctx context.Context, id, requester uuid.UUID) error
	listByAuthorFn    func(ctx context.Context, author uuid.UUID, limit, offset int) ([]domain.Post, error)
	listBySentimentFn func(ctx context.Context, label domain.SentimentLabel, limit, offset int) ([]domain.Post, error)
	listRecentFn      func(ctx context.Context, limit, offset int) ([]domain.Post, error)
	searchFn          func(ctx context.Context, text string, limit, offset int) ([]domain.Post, error)
}

func (m *mockPostService) Create(ctx context.Context, author uuid.UUID, text string) (*domain.Post, error) {
	if m.createFn != nil {
		return m.createFn(ctx, author, text)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPostService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrPostNotFound
}

func (m *mockPostService) Delete(ctx context.Context, id, requester uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, requester)
	}
	return nil
}

func (m *mockPostService) ListByAuthor(ctx context.Context, author uuid.UUID, limit, offset int) ([]domain.Post, error) {
	if m.listByAuthorFn != nil {
		return m.listByAuthorFn(ctx, author, limit, offset)
	}
	return []domain.Post{}, nil
}

func (m *mockPostService) ListBySentiment(ctx context.Context, label domain.SentimentLabel, limit, offset int) ([]domain.Post, error) {
	if m.listBySentimentFn != nil {
		return m.listBySentimentFn(ctx, label, limit, offset)
	}
	return []domain.Post{}, nil
}

func (m *mockPostService) ListRecent(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit, offset)
	}
	return []domain.Post{}, nil
}

func (m *mockPostService) Search(ctx context.Context, text string, limit, offset int) ([]domain.Post, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, text, limit, offset)
	}
	return []domain.Post{}, nil
}

type mockLedgerService struct {
	likeFn         func(ctx context.Context, user, post uuid.UUID) error
	unlikeFn       func(ctx context.Context, user, post uuid.UUID) error
	commentFn      func(ctx context.Context, user, post uuid.UUID, text string) (*domain.Interaction, error)
	listCommentsFn func(ctx context.Context, post uuid.UUID, limit, offset int) ([]domain.Interaction, error)
	breakdownFn    func(ctx context.Context, post uuid.UUID) (*engagement.Breakdown, error)
}

func (m *mockLedgerService) Like(ctx context.Context, user, post uuid.UUID) error {
	if m.likeFn != nil {
		return m.likeFn(ctx, user, post)
	}
	return nil
}

func (m *mockLedgerService) Unlike(ctx context.Context, user, post uuid.UUID) error {
	if m.unlikeFn != nil {
		return m.unlikeFn(ctx, user, post)
	}
	return nil
}

func (m *mockLedgerService) Comment(ctx context.Context, user, post uuid.UUID, text string) (*domain.Interaction, error) {
	if m.commentFn != nil {
		return m.commentFn(ctx, user, post, text)
	}
	return nil, errors.New("not implemented")
}

func (m *mockLedgerService) ListComments(ctx context.Context, post uuid.UUID, limit, offset int) ([]domain.Interaction, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, post, limit, offset)
	}
	return []domain.Interaction{}, nil
}

func (m *mockLedgerService) CommentSentimentBreakdown(ctx context.Context, post uuid.UUID) (*engagement.Breakdown, error) {
	if m.breakdownFn != nil {
		return m.breakdownFn(ctx, post)
	}
	return &engagement.Breakdown{Overall: domain.SentimentPositive}, nil
}

type mockGraphService struct {
	followFn        func(ctx context.Context, follower, following uuid.UUID) error
	unfollowFn      func(ctx context.Context, follower, following uuid.UUID) error
	listFollowingFn func(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error)
	listFollowersFn func(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error)
}

func (m *mockGraphService) Follow(ctx context.Context, follower, following uuid.UUID) error {
	if m.followFn != nil {
		return m.followFn(ctx, follower, following)
	}
	return nil
}

func (m *mockGraphService) Unfollow(ctx context.Context, follower, following uuid.UUID) error {
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, follower, following)
	}
	return nil
}

func (m *mockGraphService) ListFollowing(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error) {
	if m.listFollowingFn != nil {
		return m.listFollowingFn(ctx, user, limit, offset)
	}
	return []domain.Relationship{}, nil
}

func (m *mockGraphService) ListFollowers(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.Relationship, error) {
	if m.listFollowersFn != nil {
		return m.listFollowersFn(ctx, user, limit, offset)
	}
	return []domain.Relationship{}, nil
}

type mockFeedService struct {
	getFeedFn func(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.FeedItem, error)
}

func (m *mockFeedService) GetFeed(ctx context.Context, user uuid.UUID, limit, offset int) ([]domain.FeedItem, error) {
	if m.getFeedFn != nil {
		return m.getFeedFn(ctx, user, limit, offset)
	}
	return []domain.FeedItem{}, nil
}

type mockTrendingService struct {
	getTrendingFn func(ctx context.Context, limit int) ([]trending.Tag, error)
}

func (m *mockTrendingService) GetTrending(ctx context.Context, limit int) ([]trending.Tag, error) {
	if m.getTrendingFn != nil {
		return m.getTrendingFn(ctx, limit)
	}
	return []trending.Tag{}, nil
}

type mockStatsService struct {
	getStatsFn func(ctx context.Context) (*trending.Stats, error)
}

func (m *mockStatsService) GetSentimentStats(ctx context.Context) (*trending.Stats, error) {
	if m.getStatsFn != nil {
		return m.getStatsFn(ctx)
	}
	return &trending.Stats{}, nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, opts ...func(*Server)) *Server {
	t.Helper()

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
	store.Options = &sessions.Options{
		Path:   "/",
		MaxAge: 3600,
	}

	srv := &Server{
		echo:         echo.New(),
		config:       &config.Config{AppEnv: "test", Port: "8080"},
		accounts:     &mockAccountService{},
		posts:        &mockPostService{},
		ledger:       &mockLedgerService{},
		graph:        &mockGraphService{},
		feed:         &mockFeedService{},
		trending:     &mockTrendingService{},
		stats:        &mockStatsService{},
		sessionStore: store,
		startTime:    time.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()
	return srv
}

func withAccounts(m accountService) func(*Server) { return func(s *Server) { s.accounts = m } }

func withPosts(m postService) func(*Server) { return func(s *Server) { s.posts = m } }

func withLedger(m ledgerService) func(*Server) { return func(s *Server) { s.ledger = m } }

func withGraph(m graphService) func(*Server) { return func(s *Server) { s.graph = m } }

func withFeed(m feedService) func(*Server) { return func(s *Server) { s.feed = m } }

func withTrending(m trendingService) func(*Server) { return func(s *Server) { s.trending = m } }

func withStats(m statsService) func(*Server) { return func(s *Server) { s.stats = m } }
func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) { s.healthChecks = checks }
}

// callHandler wraps a handler with the error middleware, matching production
// behavior.
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return apperrors.Middleware()(handler)(c)
}

func setSessionUserID(t *testing.T, srv *Server, req *http.Request, rec *httptest.ResponseRecorder, userID uuid.UUID) {
	t.Helper()
	session, err := srv.sessionStore.Get(req, sessionName)
	require.NoError(t, err)
	session.Values[sessionUserID] = userID.String()
	require.NoError(t, session.Save(req, rec))
}
