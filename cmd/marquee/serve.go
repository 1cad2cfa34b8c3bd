package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/marquee/marquee/internal/api"
	"github.com/marquee/marquee/internal/config"
	"github.com/marquee/marquee/internal/logger"
	"github.com/marquee/marquee/internal/startup"
	"github.com/marquee/marquee/internal/websocket"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		mock bool
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and WebSocket server",
		Example: `  # Serve with settings from config.yaml and MARQUEE_* variables
  marquee serve

  # Serve fixture data without a TMDB token
  marquee serve --mock --port 9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg, mock)
		},
	}

	cmd.Flags().BoolVar(&mock, "mock", false, "Serve built-in fixture data instead of TMDB")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Override the configured listen port")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, mock bool) error {
	log := logger.New(logger.Config{
		Level:           cfg.Logging.Level,
		Format:          cfg.Logging.Format,
		Path:            cfg.Logging.Path,
		MaxSizeMB:       cfg.Logging.MaxSizeMB,
		MaxBackups:      cfg.Logging.MaxBackups,
		MaxAgeDays:      cfg.Logging.MaxAgeDays,
		Compress:        cfg.Logging.Compress,
		EnableStreaming: true,
		BufferSize:      1000,
	})
	defer log.Close()

	log.Info().
		Str("version", config.Version).
		Str("logLevel", cfg.Logging.Level).
		Bool("mock", mock).
		Msg("starting marquee")

	db, applied, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.Database.Path).Msg("failed to open database")
		return err
	}
	defer db.Close()
	log.Info().Int("applied", applied).Msg("database migrations complete")

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()

	hubLogger := log.WithComponent("websocket")
	hub := websocket.NewHub(&hubLogger)
	go hub.Run(hubCtx)

	// Enable log streaming via WebSocket now that hub is available
	log.SetBroadcastHub(hub)

	server, err := api.NewServer(db, hub, cfg, log.Logger, api.Options{Mock: mock, Logs: log})
	if err != nil {
		return err
	}

	err = startup.WithRetry(ctx, "tmdb connectivity", startup.DefaultRetryConfig(), server.InitializeNetworkServices, &log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("TMDB unreachable, catalog requests may fail until the network is restored")
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("received shutdown signal")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server failed")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
