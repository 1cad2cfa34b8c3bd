package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marquee/marquee/internal/config"
)

// StatusResponse describes the running service.
type StatusResponse struct {
	Version          string    `json:"version"`
	StartTime        time.Time `json:"startTime"`
	Uptime           string    `json:"uptime"`
	DeveloperMode    bool      `json:"developerMode"`
	TMDBConfigured   bool      `json:"tmdbConfigured"`
	BookmarkCount    int       `json:"bookmarkCount"`
	CachedMovies     int       `json:"cachedMovies"`
	WebSocketClients int       `json:"websocketClients"`
}

// --- Handler implementations ---

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getStatus(c echo.Context) error {
	ctx := c.Request().Context()

	bookmarkCount, err := s.bookmarkStore.Count(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to count bookmarks")
	}

	resp := StatusResponse{
		Version:        config.Version,
		StartTime:      s.startTime,
		Uptime:         time.Since(s.startTime).Round(time.Second).String(),
		DeveloperMode:  s.opts.Mock,
		TMDBConfigured: s.catalogService.IsConfigured(),
		BookmarkCount:  bookmarkCount,
		CachedMovies:   s.cache.Len(),
	}
	if s.hub != nil {
		resp.WebSocketClients = s.hub.ClientCount()
	}
	return c.JSON(http.StatusOK, resp)
}
