package bookmarks

import (
	"context"

	"github.com/rs/zerolog"
)

// Coordinator is the entry point presentation code uses to change and observe
// bookmarks.
type Coordinator struct {
	store  *Store
	logger zerolog.Logger
}

// NewCoordinator creates a coordinator over store.
func NewCoordinator(store *Store, logger *zerolog.Logger) *Coordinator {
	return &Coordinator{
		store:  store,
		logger: logger.With().Str("component", "bookmark-toggle").Logger(),
	}
}

// Toggle flips the bookmark state of movie based on the caller's view of it.
func (c *Coordinator) Toggle(ctx context.Context, movie BookmarkedMovie, currentlyBookmarked bool) error {
	action := "add"
	if currentlyBookmarked {
		action = "remove"
	}

	if err := c.store.Toggle(ctx, movie, currentlyBookmarked); err != nil {
		c.logger.Error().Err(err).Int("id", movie.ID).Str("action", action).Msg("Bookmark toggle failed")
		return err
	}

	c.logger.Info().Int("id", movie.ID).Str("title", movie.Title).Str("action", action).Msg("Bookmark toggled")
	return nil
}

// IsBookmarked reports whether id is currently bookmarked.
func (c *Coordinator) IsBookmarked(ctx context.Context, id int) (bool, error) {
	return c.store.IsBookmarked(ctx, id)
}

// WatchBookmarked streams the bookmark flag of id.
func (c *Coordinator) WatchBookmarked(ctx context.Context, id int) (<-chan bool, error) {
	return c.store.WatchBookmarked(ctx, id)
}

// Watch streams the bookmark list.
func (c *Coordinator) Watch(ctx context.Context) (<-chan []BookmarkedMovie, error) {
	return c.store.Watch(ctx)
}
