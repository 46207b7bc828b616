package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ripple-social/ripple/internal/adapter/metrics"
	apperrors "github.com/ripple-social/ripple/internal/platform/errors"
)

func (s *Server) registerRoutes() {
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(apperrors.Middleware())
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	s.registerHealthRoutes()
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	loginLimiter := newRateLimiter(1, 5)

	auth := s.echo.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin, loginLimiter)
	auth.POST("/logout", s.handleLogout, s.requireAuth)
	auth.GET("/me", s.handleMe, s.requireAuth)

	users := s.echo.Group("/users")
	users.GET("/:username", s.handleGetProfile)
	users.PUT("/me", s.handleUpdateProfile, s.requireAuth)
	users.DELETE("/me", s.handleDeactivate, s.requireAuth)
	users.POST("/:id/follow", s.handleFollow, s.requireAuth)
	users.DELETE("/:id/follow", s.handleUnfollow, s.requireAuth)
	users.GET("/:id/followers", s.handleListFollowers)
	users.GET("/:id/following", s.handleListFollowing)

	posts := s.echo.Group("/posts")
	posts.POST("", s.handleCreatePost, s.requireAuth)
	posts.GET("", s.handleListRecentPosts)
	posts.GET("/search", s.handleSearchPosts)
	posts.GET("/user/:id", s.handleListPostsByUser)
	posts.GET("/sentiment/:label", s.handleListPostsBySentiment)
	posts.GET("/:id", s.handleGetPost)
	posts.DELETE("/:id", s.handleDeletePost, s.requireAuth)
	posts.POST("/:id/like", s.handleLike, s.requireAuth)
	posts.DELETE("/:id/like", s.handleUnlike, s.requireAuth)
	posts.POST("/:id/comments", s.handleComment, s.requireAuth)
	posts.GET("/:id/comments", s.handleListComments)
	posts.GET("/:id/comments/sentiment", s.handleCommentBreakdown)

	s.echo.GET("/feed", s.handleFeed, s.requireAuth)
	s.echo.GET("/trending", s.handleTrending)
	s.echo.GET("/stats/sentiment", s.handleSentimentStats)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
