package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ripple-social/ripple/internal/account"
	apperrors "github.com/ripple-social/ripple/internal/platform/errors"
)

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	user, err := s.accounts.Register(c.Request().Context(), account.RegisterParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		return mapDomainError(err)
	}

	if err := s.openSession(c, user.ID.String()); err != nil {
		return apperrors.InternalError("failed to create session", err)
	}
	return respond(c, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	user, err := s.accounts.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return mapDomainError(err)
	}

	if err := s.openSession(c, user.ID.String()); err != nil {
		return apperrors.InternalError("failed to create session", err)
	}
	return respond(c, http.StatusOK, user)
}

func (s *Server) handleLogout(c echo.Context) error {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err == nil {
		session.Options.MaxAge = -1
		_ = session.Save(c.Request(), c.Response())
	}
	return respond(c, http.StatusOK, nil)
}

func (s *Server) handleMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := s.accounts.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, user)
}

func (s *Server) openSession(c echo.Context, userID string) error {
	session, err := s.sessionStore.New(c.Request(), sessionName)
	if err != nil {
		return err
	}
	session.Values[sessionUserID] = userID
	return session.Save(c.Request(), c.Response())
}
