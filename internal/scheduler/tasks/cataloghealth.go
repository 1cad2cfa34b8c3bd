package tasks

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marquee/marquee/internal/scheduler"
)

// ConnectionTester checks that the remote catalog is reachable.
type ConnectionTester interface {
	IsConfigured() bool
	Test(ctx context.Context) error
}

// RegisterCatalogHealthTask registers an hourly TMDB connectivity check.
func RegisterCatalogHealthTask(sched *scheduler.Scheduler, tester ConnectionTester, logger *zerolog.Logger) error {
	if tester == nil {
		return nil
	}

	log := logger.With().Str("task", "catalog-health").Logger()

	return sched.RegisterTask(scheduler.TaskConfig{
		ID:          "catalog-health",
		Name:        "Catalog Health",
		Description: "Checks that the TMDB API is configured and reachable",
		Cron:        "0 * * * *",
		Func: func(ctx context.Context) error {
			if !tester.IsConfigured() {
				log.Debug().Msg("TMDB not configured, skipping health check")
				return nil
			}
			if err := tester.Test(ctx); err != nil {
				log.Warn().Err(err).Msg("TMDB health check failed")
				return err
			}
			return nil
		},
	})
}
