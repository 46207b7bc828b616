package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleTrending(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	tags, err := s.trending.GetTrending(c.Request().Context(), limit)
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, tags)
}

func (s *Server) handleSentimentStats(c echo.Context) error {
	stats, err := s.stats.GetSentimentStats(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}
	return respond(c, http.StatusOK, stats)
}
