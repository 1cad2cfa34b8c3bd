package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/marquee/marquee/internal/catalog"
	"github.com/marquee/marquee/internal/observe"
	"github.com/marquee/marquee/internal/uistate"
)

const (
	DefaultDebounce   = 500 * time.Millisecond
	DefaultMaxResults = 20
	DefaultTimeout    = 10 * time.Second
)

// Results is the envelope published for the current query.
type Results = uistate.State[[]catalog.Movie]

// Searcher runs a remote search.
type Searcher interface {
	Search(ctx context.Context, query string, page int) ([]catalog.Movie, error)
}

// Broadcaster pushes an event to connected clients.
type Broadcaster interface {
	Broadcast(msgType string, payload any) error
}

// Config tunes the coordinator. Zero values fall back to the defaults.
type Config struct {
	Debounce   time.Duration
	MaxResults int
	Timeout    time.Duration
	Clock      clockwork.Clock
}

// QueryEvent is the payload of a "search:query" broadcast.
type QueryEvent struct {
	Query string `json:"query"`
}

// Coordinator turns a stream of query edits into search results. Edits are
// debounced, repeated queries are ignored, and matches from the in-memory
// catalog are shown while the remote search runs. Only the newest query may
// publish results.
type Coordinator struct {
	remote Searcher
	local  LocalSource
	cfg    Config
	clock  clockwork.Clock
	logger zerolog.Logger

	query   *observe.Value[string]
	results *observe.Value[Results]

	baseCtx    context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup

	mu         sync.Mutex
	timer      clockwork.Timer
	pending    uint64 // bumped on every edit; stale timers compare against it
	generation uint64 // bumped on every search; stale remote results compare against it
	last       string
	hasLast    bool
	cancel     context.CancelFunc
	closed     bool
	hub        Broadcaster
}

// NewCoordinator creates a coordinator. Results start as an empty success.
func NewCoordinator(remote Searcher, local LocalSource, cfg Config, logger *zerolog.Logger) *Coordinator {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		remote:     remote,
		local:      local,
		cfg:        cfg,
		clock:      clock,
		logger:     logger.With().Str("component", "search").Logger(),
		query:      observe.NewValue(""),
		results:    observe.NewValue(uistate.Success([]catalog.Movie{})),
		baseCtx:    ctx,
		baseCancel: cancel,
	}
}

// SetBroadcaster sets the hub receiving query and result changes.
func (c *Coordinator) SetBroadcaster(hub Broadcaster) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hub = hub
}

// UpdateQuery records a query edit. The query is echoed immediately; the
// search starts once no further edit arrives within the debounce window.
func (c *Coordinator) UpdateQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.query.Set(q)
	c.broadcastLocked("search:query", QueryEvent{Query: q})

	if c.timer != nil {
		c.timer.Stop()
	}
	c.pending++
	seq := c.pending
	c.timer = c.clock.AfterFunc(c.cfg.Debounce, func() {
		c.fire(q, seq)
	})
}

// Clear resets the query and results and forgets the last searched query,
// so typing the same query again searches again.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending++
	c.generation++
	c.cancelLocked()
	c.last = ""
	c.hasLast = false

	c.query.Set("")
	c.broadcastLocked("search:query", QueryEvent{})
	c.publishLocked(uistate.Success([]catalog.Movie{}))
}

// Close stops pending timers, cancels in-flight work and waits for it.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.cancelLocked()
	c.mu.Unlock()

	c.baseCancel()
	c.wg.Wait()
}

// Query returns the latest query edit.
func (c *Coordinator) Query() string {
	return c.query.Get()
}

// Results returns the current results envelope.
func (c *Coordinator) Results() Results {
	return c.results.Get()
}

// WatchQuery streams query edits until ctx ends.
func (c *Coordinator) WatchQuery(ctx context.Context) <-chan string {
	return c.query.Subscribe(ctx)
}

// WatchResults streams result envelopes until ctx ends.
func (c *Coordinator) WatchResults(ctx context.Context) <-chan Results {
	return c.results.Subscribe(ctx)
}

// fire runs when the debounce window of an edit elapses.
func (c *Coordinator) fire(q string, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.pending {
		return
	}

	trimmed := strings.TrimSpace(q)
	if c.hasLast && trimmed == c.last {
		return
	}
	c.last = trimmed
	c.hasLast = true

	c.generation++
	c.cancelLocked()

	if trimmed == "" {
		c.publishLocked(uistate.Success([]catalog.Movie{}))
		return
	}

	local := MatchLocal(c.local.All(), trimmed, c.cfg.MaxResults)
	if len(local) > 0 {
		c.publishLocked(uistate.Success(local))
	} else {
		c.publishLocked(uistate.Loading[[]catalog.Movie]())
	}

	ctx, cancel := context.WithTimeout(c.baseCtx, c.cfg.Timeout)
	c.cancel = cancel
	gen := c.generation

	c.wg.Add(1)
	go c.runRemote(ctx, cancel, gen, trimmed, local)
}

func (c *Coordinator) runRemote(ctx context.Context, cancel context.CancelFunc, gen uint64, q string, local []catalog.Movie) {
	defer c.wg.Done()
	defer cancel()

	movies, err := c.remote.Search(ctx, q, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.logger.Debug().Str("query", q).Msg("Discarding superseded search result")
		return
	}
	c.cancel = nil

	switch {
	case err == nil:
		if len(movies) > c.cfg.MaxResults {
			movies = movies[:c.cfg.MaxResults]
		}
		c.publishLocked(uistate.Success(movies))
	case len(local) > 0:
		c.logger.Warn().Err(err).Str("query", q).Int("local", len(local)).Msg("Remote search failed, keeping local matches")
		c.publishLocked(uistate.Success(local))
	default:
		c.logger.Warn().Err(err).Str("query", q).Msg("Remote search failed")
		c.publishLocked(uistate.Failure[[]catalog.Movie](err))
	}
}

func (c *Coordinator) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Coordinator) publishLocked(state Results) {
	c.results.Set(state)
	c.broadcastLocked("search:state", state)
}

func (c *Coordinator) broadcastLocked(msgType string, payload any) {
	if c.hub == nil {
		return
	}
	if err := c.hub.Broadcast(msgType, payload); err != nil {
		c.logger.Debug().Err(err).Str("type", msgType).Msg("Failed to broadcast search event")
	}
}
