package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/marquee/marquee/internal/database/sqlc"
	"github.com/marquee/marquee/internal/observe"
)

// Broadcaster pushes an event to connected clients.
type Broadcaster interface {
	Broadcast(msgType string, payload any) error
}

// Store persists bookmarked movies and publishes the full list after every
// change. Subscribers see snapshots in mutation order.
type Store struct {
	queries *sqlc.Queries
	clock   clockwork.Clock
	logger  zerolog.Logger

	// writeMu spans a mutation and the snapshot read that follows it.
	writeMu sync.Mutex
	rows    *observe.Value[[]BookmarkedMovie]
	loaded  bool

	hubMu sync.RWMutex
	hub   Broadcaster
}

// NewStore creates a store on an already migrated database.
func NewStore(db *sql.DB, logger *zerolog.Logger) *Store {
	return newStore(db, logger)
}

func newStore(db sqlc.DBTX, logger *zerolog.Logger) *Store {
	return &Store{
		queries: sqlc.New(db),
		clock:   clockwork.NewRealClock(),
		logger:  logger.With().Str("component", "bookmarks").Logger(),
		rows:    observe.NewValue([]BookmarkedMovie{}),
	}
}

// SetClock replaces the clock used to stamp new bookmarks.
func (s *Store) SetClock(clock clockwork.Clock) {
	s.clock = clock
}

// SetBroadcaster sets the hub receiving "bookmarks:updated" events.
func (s *Store) SetBroadcaster(hub Broadcaster) {
	s.hubMu.Lock()
	defer s.hubMu.Unlock()
	s.hub = hub
}

// Load reads the current rows and publishes them to subscribers.
func (s *Store) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.publishLocked(ctx)
}

// Watch streams the bookmark list, newest first. The current list is
// delivered immediately. The channel closes when ctx ends. Until the table
// has been read once, Watch reads it first and returns the error if that
// fails; the next call tries again.
func (s *Store) Watch(ctx context.Context) (<-chan []BookmarkedMovie, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if !s.loaded {
		if err := s.publishLocked(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to load bookmarks for watcher")
			return nil, err
		}
	}
	return s.rows.Subscribe(ctx), nil
}

// WatchBookmarked streams whether id is bookmarked, emitting only on change.
func (s *Store) WatchBookmarked(ctx context.Context, id int) (<-chan bool, error) {
	rows, err := s.Watch(ctx)
	if err != nil {
		return nil, err
	}
	return observe.Map(rows, func(rows []BookmarkedMovie) bool {
		return slices.ContainsFunc(rows, func(m BookmarkedMovie) bool { return m.ID == id })
	}, func(a, b bool) bool { return a == b }), nil
}

// List returns every bookmark, newest first.
func (s *Store) List(ctx context.Context) ([]BookmarkedMovie, error) {
	rows, err := s.queries.ListBookmarks(ctx)
	if err != nil {
		return nil, storeErr("list", err)
	}
	out := make([]BookmarkedMovie, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out, nil
}

// Get returns one bookmark or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int) (BookmarkedMovie, error) {
	row, err := s.queries.GetBookmark(ctx, int64(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookmarkedMovie{}, ErrNotFound
		}
		return BookmarkedMovie{}, storeErr("get", err)
	}
	return fromRow(row), nil
}

// IsBookmarked reports whether id is stored.
func (s *Store) IsBookmarked(ctx context.Context, id int) (bool, error) {
	exists, err := s.queries.BookmarkExists(ctx, int64(id))
	if err != nil {
		return false, storeErr("exists", err)
	}
	return exists != 0, nil
}

// Count returns the number of bookmarks.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.queries.CountBookmarks(ctx)
	if err != nil {
		return 0, storeErr("count", err)
	}
	return int(n), nil
}

// Add stores movie, replacing any existing row with the same id. The
// bookmark time is reset on every add.
func (s *Store) Add(ctx context.Context, movie BookmarkedMovie) error {
	if movie.ID <= 0 {
		return ErrInvalidMovie
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.queries.UpsertBookmark(ctx, toParams(movie, s.clock.Now().UTC())); err != nil {
		return storeErr("add", err)
	}
	s.logger.Debug().Int("id", movie.ID).Str("title", movie.Title).Msg("Bookmark added")

	return s.publishLocked(context.WithoutCancel(ctx))
}

// Remove deletes the bookmark with movie's id. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, movie BookmarkedMovie) error {
	return s.RemoveByID(ctx, movie.ID)
}

// RemoveByID deletes the bookmark with id. Removing an absent id is a no-op.
func (s *Store) RemoveByID(ctx context.Context, id int) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	n, err := s.queries.DeleteBookmark(ctx, int64(id))
	if err != nil {
		return storeErr("remove", err)
	}
	if n == 0 {
		return nil
	}
	s.logger.Debug().Int("id", id).Msg("Bookmark removed")

	return s.publishLocked(context.WithoutCancel(ctx))
}

// Toggle removes movie when currentlyBookmarked is true and adds it otherwise.
// The flag is trusted as given; a stale flag is executed literally.
func (s *Store) Toggle(ctx context.Context, movie BookmarkedMovie, currentlyBookmarked bool) error {
	if currentlyBookmarked {
		return s.Remove(ctx, movie)
	}
	return s.Add(ctx, movie)
}

// publishLocked re-reads the table and publishes it. Callers hold writeMu.
// After a committed write, callers pass a context that cannot be cancelled so
// the snapshot always follows the table.
func (s *Store) publishLocked(ctx context.Context) error {
	rows, err := s.List(ctx)
	if err != nil {
		return err
	}
	s.rows.Set(rows)
	s.loaded = true

	s.hubMu.RLock()
	hub := s.hub
	s.hubMu.RUnlock()
	if hub != nil {
		if err := hub.Broadcast("bookmarks:updated", rows); err != nil {
			s.logger.Debug().Err(err).Msg("Failed to broadcast bookmarks")
		}
	}
	return nil
}
