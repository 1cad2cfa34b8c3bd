package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/marquee/marquee/internal/api/handlers"
	apimw "github.com/marquee/marquee/internal/api/middleware"
	"github.com/marquee/marquee/internal/bookmarks"
	"github.com/marquee/marquee/internal/catalog"
	"github.com/marquee/marquee/internal/search"
)

func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Security headers
	s.echo.Use(apimw.SecurityHeaders())

	// Request body size limit (1MB)
	s.echo.Use(middleware.BodyLimit("1M"))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Request logging
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogMethod:    true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("requestId", v.RequestID).
					Err(v.Error).
					Msg("request error")
			} else {
				s.logger.Info().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("requestId", v.RequestID).
					Msg("request")
			}
			return nil
		},
	}))

	// Gzip compression
	s.echo.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			// Skip compression for WebSocket
			return c.Request().Header.Get("Upgrade") == "websocket"
		},
	}))
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	if s.hub != nil {
		s.echo.GET("/ws", s.hub.HandleWebSocket)
	}

	api := s.echo.Group("/api/v1")
	api.GET("/status", s.getStatus)

	// Routes that reach TMDB on demand share a per-client budget.
	limited := s.remoteLimiter.Middleware()

	catalogHandlers := catalog.NewHandlers(s.catalogService, s.collections)
	catalogHandlers.RegisterRoutes(api, limited)

	searchHandlers := search.NewHandlers(s.searchCoordinator, s.catalogService)
	searchHandlers.RegisterRoutes(api.Group("/search"), limited)

	bookmarkHandlers := bookmarks.NewHandlers(s.bookmarkStore, s.bookmarkCoordinator)
	bookmarkHandlers.RegisterRoutes(api.Group("/bookmarks"))

	s.setupSystemRoutes(api.Group("/system"))
}

func (s *Server) setupSystemRoutes(system *echo.Group) {
	logsHandlers := NewLogsHandlers(s.opts.Logs)
	logsHandlers.RegisterRoutes(system.Group("/logs"))

	schedulerHandler := handlers.NewSchedulerHandler(s.scheduler)
	system.GET("/tasks", schedulerHandler.ListTasks)
	system.GET("/tasks/:id", schedulerHandler.GetTask)
	system.POST("/tasks/:id/run", schedulerHandler.RunTask)
}
