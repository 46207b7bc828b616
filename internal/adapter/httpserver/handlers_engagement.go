package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/ripple-social/ripple/internal/platform/errors"
)

func (s *Server) handleLike(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := s.ledger.Like(c.Request().Context(), userID, postID); err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusCreated, nil)
}

func (s *Server) handleUnlike(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := s.ledger.Unlike(c.Request().Context(), userID, postID); err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, nil)
}

type commentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	comment, err := s.ledger.Comment(c.Request().Context(), userID, postID, req.Content)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusCreated, comment)
}

func (s *Server) handleListComments(c echo.Context) error {
	postID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	comments, err := s.ledger.ListComments(c.Request().Context(), postID, limit, offset)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, comments)
}

func (s *Server) handleCommentBreakdown(c echo.Context) error {
	postID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	breakdown, err := s.ledger.CommentSentimentBreakdown(c.Request().Context(), postID)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, breakdown)
}
