package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/ripple-social/ripple/internal/platform/errors"
)

func (s *Server) handleGetProfile(c echo.Context) error {
	username := c.Param("username")

	user, err := s.accounts.GetByUsername(c.Request().Context(), username)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, user)
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	user, err := s.accounts.UpdateProfile(c.Request().Context(), userID, req.DisplayName, req.Bio)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, user)
}

func (s *Server) handleDeactivate(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := s.accounts.Deactivate(c.Request().Context(), userID); err != nil {
		return mapDomainError(err)
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err == nil {
		session.Options.MaxAge = -1
		_ = session.Save(c.Request(), c.Response())
	}
	return respond(c, http.StatusOK, nil)
}

func (s *Server) handleFollow(c echo.Context) error {
	followerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	followingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := s.graph.Follow(c.Request().Context(), followerID, followingID); err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusCreated, nil)
}

func (s *Server) handleUnfollow(c echo.Context) error {
	followerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	followingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := s.graph.Unfollow(c.Request().Context(), followerID, followingID); err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, nil)
}

func (s *Server) handleListFollowers(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	relationships, err := s.graph.ListFollowers(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, relationships)
}

func (s *Server) handleListFollowing(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	relationships, err := s.graph.ListFollowing(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, relationships)
}

func (s *Server) handleFeed(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	items, err := s.feed.GetFeed(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, items)
}
