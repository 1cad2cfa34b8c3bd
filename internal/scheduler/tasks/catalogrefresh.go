package tasks

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marquee/marquee/internal/config"
	"github.com/marquee/marquee/internal/scheduler"
)

// DefaultCatalogRefreshCron refreshes the collections every six hours.
const DefaultCatalogRefreshCron = "0 */6 * * *"

// CollectionLoader reloads every movie collection.
type CollectionLoader interface {
	Load(ctx context.Context) error
}

// catalogRefreshTask reloads the home collections on a schedule.
type catalogRefreshTask struct {
	loader CollectionLoader
	logger zerolog.Logger
}

func newCatalogRefreshTask(loader CollectionLoader, logger *zerolog.Logger) *catalogRefreshTask {
	return &catalogRefreshTask{
		loader: loader,
		logger: logger.With().Str("task", "catalog-refresh").Logger(),
	}
}

func (t *catalogRefreshTask) run(ctx context.Context) error {
	t.logger.Debug().Msg("Refreshing catalog collections")

	if err := t.loader.Load(ctx); err != nil {
		t.logger.Warn().Err(err).Msg("Catalog refresh finished with errors")
		return err
	}

	t.logger.Debug().Msg("Catalog refresh completed")
	return nil
}

// RegisterCatalogRefreshTask registers the collection refresh task.
func RegisterCatalogRefreshTask(sched *scheduler.Scheduler, loader CollectionLoader, cfg config.CatalogConfig, logger *zerolog.Logger) error {
	if loader == nil {
		return nil
	}

	cron := cfg.RefreshCron
	if cron == "" {
		cron = DefaultCatalogRefreshCron
	}

	task := newCatalogRefreshTask(loader, logger)

	return sched.RegisterTask(scheduler.TaskConfig{
		ID:          "catalog-refresh",
		Name:        "Catalog Refresh",
		Description: "Reloads the now playing, upcoming, top rated and popular collections",
		Cron:        cron,
		RunOnStart:  cfg.RefreshOnStart,
		Func:        task.run,
	})
}
