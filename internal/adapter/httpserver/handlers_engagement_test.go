package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
	"github.com/ripple-social/ripple/internal/engagement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLike_Success(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()
	var liked bool
	ledger := &mockLedgerService{
		likeFn: func(_ context.Context, user, post uuid.UUID) error {
			liked = true
			assert.Equal(t, userID, user)
			assert.Equal(t, postID, post)
			return nil
		},
	}
	srv := newTestServer(t, withLedger(ledger))

	req := httptest.NewRequest(http.MethodPost, "/posts/"+postID.String()+"/like", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(postID.String())
	c.Set(contextUserID, userID)

	require.NoError(t, srv.handleLike(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, liked)
}

func TestHandleLike_Duplicate(t *testing.T) {
	ledger := &mockLedgerService{
		likeFn: func(context.Context, uuid.UUID, uuid.UUID) error {
			return domain.ErrAlreadyLiked
		},
	}
	srv := newTestServer(t, withLedger(ledger))
	postID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/posts/"+postID.String()+"/like", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(postID.String())
	c.Set(contextUserID, uuid.New())

	_ = callHandler(srv.handleLike, c)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleUnlike_NotLiked(t *testing.T) {
	ledger := &mockLedgerService{
		unlikeFn: func(context.Context, uuid.UUID, uuid.UUID) error {
			return domain.ErrLikeNotFound
		},
	}
	srv := newTestServer(t, withLedger(ledger))
	postID := uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/posts/"+postID.String()+"/like", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(postID.String())
	c.Set(contextUserID, uuid.New())

	_ = callHandler(srv.handleUnlike, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleComment_Success(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()
	ledger := &mockLedgerService{
		commentFn: func(_ context.Context, user, post uuid.UUID, text string) (*domain.Interaction, error) {
			assert.Equal(t, userID, user)
			assert.Equal(t, postID, post)
			assert.Equal(t, "nice one", text)
			return &domain.Interaction{
				ID: uuid.New(), User: user, Post: post, Type: domain.InteractionComment,
				Comment: &domain.Comment{Content: text},
			}, nil
		},
	}
	srv := newTestServer(t, withLedger(ledger))

	req := jsonRequest(http.MethodPost, "/posts/"+postID.String()+"/comments", `{"content":"nice one"}`)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(postID.String())
	c.Set(contextUserID, userID)

	require.NoError(t, srv.handleComment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "nice one")
}

func TestHandleCommentBreakdown(t *testing.T) {
	postID := uuid.New()
	ledger := &mockLedgerService{
		breakdownFn: func(_ context.Context, post uuid.UUID) (*engagement.Breakdown, error) {
			assert.Equal(t, postID, post)
			return &engagement.Breakdown{Positive: 2, Negative: 1, Total: 3, Overall: domain.SentimentPositive}, nil
		},
	}
	srv := newTestServer(t, withLedger(ledger))

	req := httptest.NewRequest(http.MethodGet, "/posts/"+postID.String()+"/comments/sentiment", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(postID.String())

	require.NoError(t, srv.handleCommentBreakdown(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"overallSentiment":"positive"`)
}

func TestHandleListComments_PostNotFound(t *testing.T) {
	ledger := &mockLedgerService{
		listCommentsFn: func(context.Context, uuid.UUID, int, int) ([]domain.Interaction, error) {
			return nil, domain.ErrPostNotFound
		},
	}
	srv := newTestServer(t, withLedger(ledger))
	postID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/posts/"+postID.String()+"/comments", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(postID.String())

	_ = callHandler(srv.handleListComments, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
