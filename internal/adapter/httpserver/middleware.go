package httpserver

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apperrors "github.com/ripple-social/ripple/internal/platform/errors"
)

const (
	sessionName   = "ripple_session"
	sessionUserID = "userID"
	contextUserID = "userID"
)

// requireAuth resolves the session cookie into a user ID on the context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), sessionName)
		if err != nil {
			return apperrors.UnauthorizedError("invalid session")
		}

		raw, ok := session.Values[sessionUserID].(string)
		if !ok || raw == "" {
			return apperrors.UnauthorizedError("authentication required")
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.UnauthorizedError("invalid session")
		}

		c.Set(contextUserID, userID)
		return next(c)
	}
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(contextUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.InternalError("missing user ID in context", nil)
	}
	return userID, nil
}

// pathUUID parses a :param path segment as a UUID.
func pathUUID(c echo.Context, param string) (uuid.UUID, error) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid id format").WithField(param, raw)
	}
	return id, nil
}

// pageParams reads limit/offset query parameters, leaving zero values for
// the services to clamp to their defaults.
func pageParams(c echo.Context) (limit, offset int) {
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			offset = v
		}
	}
	return limit, offset
}
