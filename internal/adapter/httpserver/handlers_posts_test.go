package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCreatePost_Success(t *testing.T) {
	userID := uuid.New()
	posts := &mockPostService{
		createFn: func(_ context.Context, author uuid.UUID, text string) (*domain.Post, error) {
			assert.Equal(t, userID, author)
			assert.Equal(t, "hello #world", text)
			return &domain.Post{ID: uuid.New(), Author: author, Content: text, Hashtags: []string{"world"}}, nil
		},
	}
	srv := newTestServer(t, withPosts(posts))

	req := jsonRequest(http.MethodPost, "/posts", `{"content":"hello #world"}`)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.Set(contextUserID, userID)

	require.NoError(t, srv.handleCreatePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hashtags":["world"]`)
}

func TestHandleCreatePost_InvalidContent(t *testing.T) {
	posts := &mockPostService{
		createFn: func(context.Context, uuid.UUID, string) (*domain.Post, error) {
			return nil, domain.ErrInvalidContent
		},
	}
	srv := newTestServer(t, withPosts(posts))

	req := jsonRequest(http.MethodPost, "/posts", `{"content":""}`)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.Set(contextUserID, uuid.New())

	_ = callHandler(srv.handleCreatePost, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetPost_BadUUID(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/posts/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	_ = callHandler(srv.handleGetPost, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetPost_NotFound(t *testing.T) {
	srv := newTestServer(t)
	postID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/posts/"+postID.String(), nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(postID.String())

	_ = callHandler(srv.handleGetPost, c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDeletePost_NotAuthor(t *testing.T) {
	posts := &mockPostService{
		deleteFn: func(context.Context, uuid.UUID, uuid.UUID) error {
			return domain.ErrNotPostAuthor
		},
	}
	srv := newTestServer(t, withPosts(posts))
	postID := uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/posts/"+postID.String(), nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(postID.String())
	c.Set(contextUserID, uuid.New())

	_ = callHandler(srv.handleDeletePost, c)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleDeletePost_Success(t *testing.T) {
	userID := uuid.New()
	postID := uuid.New()
	var deleted bool
	posts := &mockPostService{
		deleteFn: func(_ context.Context, id, requester uuid.UUID) error {
			deleted = true
			assert.Equal(t, postID, id)
			assert.Equal(t, userID, requester)
			return nil
		},
	}
	srv := newTestServer(t, withPosts(posts))

	req := httptest.NewRequest(http.MethodDelete, "/posts/"+postID.String(), nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(postID.String())
	c.Set(contextUserID, userID)

	require.NoError(t, srv.handleDeletePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
}

func TestHandleListRecentPosts_PassesPagination(t *testing.T) {
	posts := &mockPostService{
		listRecentFn: func(_ context.Context, limit, offset int) ([]domain.Post, error) {
			assert.Equal(t, 5, limit)
			assert.Equal(t, 10, offset)
			return []domain.Post{}, nil
		},
	}
	srv := newTestServer(t, withPosts(posts))

	req := httptest.NewRequest(http.MethodGet, "/posts?limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleListRecentPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleListPostsBySentiment(t *testing.T) {
	posts := &mockPostService{
		listBySentimentFn: func(_ context.Context, label domain.SentimentLabel, _, _ int) ([]domain.Post, error) {
			assert.Equal(t, domain.SentimentPositive, label)
			return []domain.Post{{ID: uuid.New()}}, nil
		},
	}
	srv := newTestServer(t, withPosts(posts))

	req := httptest.NewRequest(http.MethodGet, "/posts/sentiment/positive", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("label")
	c.SetParamValues("positive")

	require.NoError(t, srv.handleListPostsBySentiment(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleSearchPosts_PassesQuery(t *testing.T) {
	posts := &mockPostService{
		searchFn: func(_ context.Context, text string, _, _ int) ([]domain.Post, error) {
			assert.Equal(t, "golang", text)
			return []domain.Post{}, nil
		},
	}
	srv := newTestServer(t, withPosts(posts))

	req := httptest.NewRequest(http.MethodGet, "/posts/search?q=golang", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleSearchPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
