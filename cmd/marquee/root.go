package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/marquee/marquee/internal/config"
	"github.com/marquee/marquee/internal/database"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "marquee",
		Short: "Movie catalog and bookmark service",
		Long: `Marquee serves a browsable TMDB movie catalog with debounced search
and locally persisted bookmarks, pushing state changes to clients over
a WebSocket.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newBookmarksCmd(opts),
		newConfigCmd(opts),
	)

	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openDatabase opens the configured database and applies pending migrations.
func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, int, error) {
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, 0, err
	}

	applied, err := db.Migrate(ctx)
	if err != nil {
		db.Close()
		return nil, 0, fmt.Errorf("run migrations: %w", err)
	}
	return db, applied, nil
}
