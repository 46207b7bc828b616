package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ripple-social/ripple/internal/domain"
	apperrors "github.com/ripple-social/ripple/internal/platform/errors"
)

type createPostRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleCreatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	post, err := s.posts.Create(c.Request().Context(), userID, req.Content)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusCreated, post)
}

func (s *Server) handleGetPost(c echo.Context) error {
	postID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	post, err := s.posts.GetByID(c.Request().Context(), postID)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, post)
}

func (s *Server) handleDeletePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := s.posts.Delete(c.Request().Context(), postID, userID); err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, nil)
}

func (s *Server) handleListRecentPosts(c echo.Context) error {
	limit, offset := pageParams(c)

	posts, err := s.posts.ListRecent(c.Request().Context(), limit, offset)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, posts)
}

func (s *Server) handleListPostsByUser(c echo.Context) error {
	authorID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	posts, err := s.posts.ListByAuthor(c.Request().Context(), authorID, limit, offset)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, posts)
}

func (s *Server) handleListPostsBySentiment(c echo.Context) error {
	label := domain.SentimentLabel(c.Param("label"))
	limit, offset := pageParams(c)

	posts, err := s.posts.ListBySentiment(c.Request().Context(), label, limit, offset)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, posts)
}

func (s *Server) handleSearchPosts(c echo.Context) error {
	query := c.QueryParam("q")
	limit, offset := pageParams(c)

	posts, err := s.posts.Search(c.Request().Context(), query, limit, offset)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, posts)
}
