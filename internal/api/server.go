package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/marquee/marquee/internal/api/ratelimit"
	"github.com/marquee/marquee/internal/bookmarks"
	"github.com/marquee/marquee/internal/catalog"
	"github.com/marquee/marquee/internal/catalog/mock"
	"github.com/marquee/marquee/internal/config"
	"github.com/marquee/marquee/internal/database"
	"github.com/marquee/marquee/internal/scheduler"
	"github.com/marquee/marquee/internal/scheduler/tasks"
	"github.com/marquee/marquee/internal/search"
	"github.com/marquee/marquee/internal/websocket"
)

// Options tunes server construction.
type Options struct {
	// Mock serves the catalog from built-in fixture data instead of TMDB.
	Mock bool
	// Logs backs the /system/logs routes. Nil serves an empty log.
	Logs LogsProvider
}

// Server handles HTTP requests for the marquee API.
type Server struct {
	echo      *echo.Echo
	db        *database.DB
	hub       *websocket.Hub
	logger    zerolog.Logger
	cfg       *config.Config
	opts      Options
	startTime time.Time

	catalogService      *catalog.Service
	cache               *catalog.Cache
	collections         *catalog.Collections
	bookmarkStore       *bookmarks.Store
	bookmarkCoordinator *bookmarks.Coordinator
	searchCoordinator   *search.Coordinator
	scheduler           *scheduler.Scheduler
	remoteLimiter       *ratelimit.IPLimiter
}

// NewServer creates a new API server instance. hub may be nil, in which case
// no events are pushed and no realtime commands are accepted.
func NewServer(db *database.DB, hub *websocket.Hub, cfg *config.Config, logger zerolog.Logger, opts Options) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if opts.Logs == nil {
		opts.Logs = emptyLogs{}
	}

	s := &Server{
		echo:      e,
		db:        db,
		hub:       hub,
		logger:    logger,
		cfg:       cfg,
		opts:      opts,
		startTime: time.Now(),
	}

	if opts.Mock {
		logger.Info().Msg("Using mock catalog client")
		s.catalogService = catalog.NewServiceWithClient(mock.NewTMDBClient(), cfg.Search.MaxResults, &logger)
	} else {
		s.catalogService = catalog.NewService(cfg.Metadata.TMDB, cfg.Search.MaxResults, &logger)
	}

	s.cache = catalog.NewCache()
	s.collections = catalog.NewCollections(s.catalogService, s.cache, &logger)

	s.bookmarkStore = bookmarks.NewStore(db.Conn(), &logger)
	s.bookmarkCoordinator = bookmarks.NewCoordinator(s.bookmarkStore, &logger)

	s.searchCoordinator = search.NewCoordinator(s.catalogService, s.cache, search.Config{
		Debounce:   cfg.Search.Debounce(),
		MaxResults: cfg.Search.MaxResults,
		Timeout:    cfg.Search.TimeoutDuration(),
	}, &logger)

	s.remoteLimiter = ratelimit.NewIPLimiter(ratelimit.DefaultRequestsPerSecond, ratelimit.DefaultBurst)

	if hub != nil {
		s.collections.SetBroadcaster(hub)
		s.bookmarkStore.SetBroadcaster(hub)
		s.searchCoordinator.SetBroadcaster(hub)
		s.registerRealtimeHandlers()
	}

	sched, err := scheduler.New(&logger)
	if err != nil {
		return nil, err
	}
	s.scheduler = sched
	if err := s.registerTasks(); err != nil {
		return nil, err
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) registerTasks() error {
	if err := tasks.RegisterCatalogRefreshTask(s.scheduler, s.collections, s.cfg.Catalog, &s.logger); err != nil {
		return fmt.Errorf("register catalog refresh: %w", err)
	}
	if err := tasks.RegisterCatalogHealthTask(s.scheduler, s.catalogService, &s.logger); err != nil {
		return fmt.Errorf("register catalog health: %w", err)
	}
	return nil
}

// InitializeNetworkServices checks that the remote catalog is reachable.
// It is meant to run under startup.WithRetry.
func (s *Server) InitializeNetworkServices(ctx context.Context) error {
	if !s.catalogService.IsConfigured() {
		s.logger.Warn().Msg("TMDB access token not configured, catalog requests will fail")
		return nil
	}
	return s.catalogService.Test(ctx)
}

// Start loads persisted state, starts background tasks and begins listening
// for HTTP requests.
func (s *Server) Start(address string) error {
	if err := s.Prepare(context.Background()); err != nil {
		return err
	}

	s.logger.Info().Str("address", address).Msg("starting HTTP server")
	return s.echo.Start(address)
}

// Prepare loads the bookmark snapshot and starts the scheduler.
func (s *Server) Prepare(ctx context.Context) error {
	if err := s.bookmarkStore.Load(ctx); err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	return s.scheduler.Start()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	var errs []error
	if err := s.scheduler.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
	}
	s.searchCoordinator.Close()

	if err := s.echo.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
