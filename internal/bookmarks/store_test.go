package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee/marquee/internal/catalog"
	"github.com/marquee/marquee/internal/database/sqlc"
	"github.com/marquee/marquee/internal/testutil"
	"github.com/marquee/marquee/internal/uistate"
)

func newTestStore(t *testing.T) (*Store, *clockwork.FakeClock) {
	t.Helper()
	tdb := testutil.NewTestDB(t)
	store := NewStore(tdb.Conn, &tdb.Logger)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store.SetClock(clock)
	return store, clock
}

func inception() BookmarkedMovie {
	return BookmarkedMovie{
		ID:          27205,
		Title:       "Inception",
		PosterPath:  "/xlaY2zyzMfkhk0HSC5VUwzoZPU1.jpg",
		VoteAverage: 8.4,
		ReleaseDate: "2010-07-15",
		Runtime:     testutil.IntPtr(148),
	}
}

func TestStore_AddRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, inception()))

	got, err := store.Get(ctx, 27205)
	require.NoError(t, err)
	assert.Equal(t, "Inception", got.Title)
	assert.Equal(t, "/xlaY2zyzMfkhk0HSC5VUwzoZPU1.jpg", got.PosterPath)
	assert.InDelta(t, 8.4, got.VoteAverage, 0.0001)
	assert.Equal(t, "2010-07-15", got.ReleaseDate)
	require.NotNil(t, got.Runtime)
	assert.Equal(t, 148, *got.Runtime)

	ok, err := store.IsBookmarked(ctx, 27205)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_AddIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, inception()))
	require.NoError(t, store.Add(ctx, inception()))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_AddLastWriteWins(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, inception()))
	updated := inception()
	updated.Title = "Inception (2010)"
	updated.Runtime = nil
	require.NoError(t, store.Add(ctx, updated))

	got, err := store.Get(ctx, 27205)
	require.NoError(t, err)
	assert.Equal(t, "Inception (2010)", got.Title)
	assert.Nil(t, got.Runtime)
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Remove(ctx, BookmarkedMovie{ID: 42}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, BookmarkedMovie{ID: 1, Title: "First"}))
	clock.Advance(time.Minute)
	require.NoError(t, store.Add(ctx, BookmarkedMovie{ID: 2, Title: "Second"}))
	clock.Advance(time.Minute)
	require.NoError(t, store.Add(ctx, BookmarkedMovie{ID: 3, Title: "Third"}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{list[0].ID, list[1].ID, list[2].ID})
	assert.True(t, list[0].BookmarkedAt.After(list[2].BookmarkedAt))
}

func TestStore_AddRejectsMissingID(t *testing.T) {
	store, _ := newTestStore(t)
	assert.ErrorIs(t, store.Add(context.Background(), BookmarkedMovie{Title: "x"}), ErrInvalidMovie)
}

func TestStore_ToggleTrustsCaller(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	movie := inception()

	require.NoError(t, store.Toggle(ctx, movie, false))
	ok, _ := store.IsBookmarked(ctx, movie.ID)
	assert.True(t, ok)

	// A stale "not bookmarked" flag re-adds instead of removing.
	require.NoError(t, store.Toggle(ctx, movie, false))
	ok, _ = store.IsBookmarked(ctx, movie.ID)
	assert.True(t, ok)

	require.NoError(t, store.Toggle(ctx, movie, true))
	ok, _ = store.IsBookmarked(ctx, movie.ID)
	assert.False(t, ok)

	// A stale "bookmarked" flag removes nothing.
	require.NoError(t, store.Toggle(ctx, movie, true))
	ok, _ = store.IsBookmarked(ctx, movie.ID)
	assert.False(t, ok)
}

func TestStore_WatchReceivesCurrentThenChanges(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, store.Add(ctx, BookmarkedMovie{ID: 1, Title: "Existing"}))

	ch, err := store.Watch(ctx)
	require.NoError(t, err)
	first := <-ch
	require.Len(t, first, 1)
	assert.Equal(t, 1, first[0].ID)

	require.NoError(t, store.Add(ctx, BookmarkedMovie{ID: 2, Title: "New"}))
	next := <-ch
	assert.Len(t, next, 2)

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-ch
		return !open
	}, time.Second, 5*time.Millisecond)
}

func TestStore_WatchBookmarkedDeduplicates(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := store.WatchBookmarked(ctx, 27205)
	require.NoError(t, err)
	assert.False(t, <-ch)

	// Unrelated change keeps the flag false and emits nothing.
	require.NoError(t, store.Add(ctx, BookmarkedMovie{ID: 1, Title: "Other"}))
	require.NoError(t, store.Add(ctx, inception()))

	require.Eventually(t, func() bool {
		select {
		case v := <-ch:
			return v
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestStore_ConcurrentMutationsPublishLatest(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, store.Add(ctx, BookmarkedMovie{ID: id, Title: "Movie"}))
		}(i)
	}
	wg.Wait()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	ch, err := store.Watch(watchCtx)
	require.NoError(t, err)
	snapshot := <-ch
	assert.Len(t, snapshot, 20)
}

func TestStore_BroadcastsUpdates(t *testing.T) {
	store, _ := newTestStore(t)
	hub := &recordingHub{}
	store.SetBroadcaster(hub)

	require.NoError(t, store.Add(context.Background(), inception()))
	require.NoError(t, store.RemoveByID(context.Background(), inception().ID))

	assert.Equal(t, []string{"bookmarks:updated", "bookmarks:updated"}, hub.types())
}

// cancelOnExec cancels the caller's context as soon as a write commits.
type cancelOnExec struct {
	sqlc.DBTX
	cancel context.CancelFunc
}

func (c cancelOnExec) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	res, err := c.DBTX.ExecContext(ctx, query, args...)
	c.cancel()
	return res, err
}

// failingReads fails list queries while fail is set.
type failingReads struct {
	sqlc.DBTX
	fail *bool
}

func (f failingReads) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if *f.fail {
		return nil, errors.New("database is locked")
	}
	return f.DBTX.QueryContext(ctx, query, args...)
}

func TestStore_PublishesCommittedWriteAfterCancel(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	hub := &recordingHub{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := newStore(cancelOnExec{DBTX: tdb.Conn, cancel: cancel}, &tdb.Logger)
	store.SetBroadcaster(hub)

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	ch, err := store.Watch(watchCtx)
	require.NoError(t, err)
	assert.Empty(t, <-ch)

	require.NoError(t, store.Add(ctx, inception()))
	require.Error(t, ctx.Err())

	got := <-ch
	require.Len(t, got, 1)
	assert.Equal(t, 27205, got[0].ID)
	assert.Equal(t, []string{"bookmarks:updated", "bookmarks:updated"}, hub.types())

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	store = newStore(cancelOnExec{DBTX: tdb.Conn, cancel: cancel}, &tdb.Logger)
	require.NoError(t, store.RemoveByID(ctx, 27205))

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_WatchSurfacesLoadFailure(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	require.NoError(t, NewStore(tdb.Conn, &tdb.Logger).Add(context.Background(), inception()))

	fail := true
	store := newStore(failingReads{DBTX: tdb.Conn, fail: &fail}, &tdb.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := store.Watch(ctx)
	require.Error(t, err)
	assert.Nil(t, ch)
	assert.Equal(t, uistate.KindStorage, uistate.KindOf(err))

	_, err = store.WatchBookmarked(ctx, 27205)
	require.Error(t, err)

	fail = false
	ch, err = store.Watch(ctx)
	require.NoError(t, err)
	got := <-ch
	require.Len(t, got, 1)
	assert.Equal(t, "Inception", got[0].Title)
}

func TestStore_ErrorsAreStorageKind(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	store := NewStore(tdb.Conn, &tdb.Logger)
	tdb.Close()

	err := store.Add(context.Background(), inception())
	require.Error(t, err)

	var storeErr *StoreError
	assert.True(t, errors.As(err, &storeErr))
	assert.Equal(t, uistate.KindStorage, uistate.KindOf(err))
}

func TestFromMovie(t *testing.T) {
	m := catalog.Movie{
		ID:          603,
		Title:       "The Matrix",
		PosterPath:  "/p.jpg",
		Overview:    "ignored",
		VoteAverage: 8.2,
		ReleaseDate: "1999-03-31",
		Genres:      []string{"Action"},
		Runtime:     testutil.IntPtr(136),
	}

	b := FromMovie(m)
	assert.Equal(t, 603, b.ID)
	assert.Equal(t, "The Matrix", b.Title)
	assert.Equal(t, "/p.jpg", b.PosterPath)
	assert.Equal(t, 8.2, b.VoteAverage)
	assert.Equal(t, "1999-03-31", b.ReleaseDate)
	assert.Equal(t, 136, *b.Runtime)
}

type recordingHub struct {
	mu   sync.Mutex
	msgs []string
}

func (h *recordingHub) Broadcast(msgType string, payload any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, msgType)
	return nil
}

func (h *recordingHub) types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.msgs...)
}
