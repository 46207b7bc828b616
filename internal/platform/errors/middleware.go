package errors

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPErrorsTotal tracks HTTP errors by type.
var HTTPErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total HTTP errors by error type",
	},
	[]string{"type"},
)

// failureResponse is the JSON body sent for failed requests.
type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Middleware returns an Echo middleware that handles structured errors. It
// catches errors returned by handlers and converts them to
// {success:false, message} responses with the mapped status code. Only
// internal errors are logged with full context.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// Echo HTTPErrors (from framework middleware) pass through
			// unchanged to preserve their status code.
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			structuredErr := AsStructuredError(err)
			HTTPErrorsTotal.WithLabelValues(string(structuredErr.Type)).Inc()

			if structuredErr.Type == TypeInternal {
				slog.Error("Internal error",
					"error", structuredErr.Error(),
					"method", c.Request().Method,
					"uri", c.Request().RequestURI,
					"context", structuredErr.Context,
				)
			}

			if c.Response().Committed {
				return nil
			}
			return c.JSON(structuredErr.HTTPStatus(), failureResponse{Message: structuredErr.Message})
		}
	}
}
