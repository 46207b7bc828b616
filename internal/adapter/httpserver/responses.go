package httpserver

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/ripple-social/ripple/internal/domain"
	apperrors "github.com/ripple-social/ripple/internal/platform/errors"
)

// successResponse is the JSON envelope for successful requests.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, successResponse{Success: true, Data: data})
}

// mapDomainError translates domain sentinels into structured errors with the
// right HTTP status. Anything unrecognized becomes an internal error.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidContent),
		errors.Is(err, domain.ErrSelfFollow):
		return apperrors.ValidationError(err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.UnauthorizedError("invalid username or password")
	case errors.Is(err, domain.ErrNotPostAuthor):
		return apperrors.ForbiddenError("only the author can delete a post")
	case errors.Is(err, domain.ErrAlreadyLiked),
		errors.Is(err, domain.ErrAlreadyFollowing),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken):
		return apperrors.ConflictError(err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrLikeNotFound),
		errors.Is(err, domain.ErrRelationshipNotFound):
		return apperrors.NotFoundError(err.Error())
	default:
		return apperrors.InternalError("internal server error", err)
	}
}
