package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/marquee/marquee/internal/observe"
	"github.com/marquee/marquee/internal/uistate"
)

// CollectionState is the envelope published for one collection.
type CollectionState = uistate.State[[]Movie]

// CollectionEvent is the payload of a "collections:state" broadcast.
type CollectionEvent struct {
	Kind  Kind            `json:"kind"`
	State CollectionState `json:"state"`
}

// Collections loads the curated collections and publishes one envelope per
// kind. Successful loads populate the cache that local search reads.
type Collections struct {
	service *Service
	cache   *Cache
	states  map[Kind]*observe.Value[CollectionState]
	logger  zerolog.Logger

	mu  sync.Mutex
	seq map[Kind]uint64
	hub Broadcaster
}

// NewCollections creates a coordinator with every collection in Loading.
func NewCollections(service *Service, cache *Cache, logger *zerolog.Logger) *Collections {
	states := make(map[Kind]*observe.Value[CollectionState], len(AllKinds))
	for _, k := range AllKinds {
		states[k] = observe.NewValue(uistate.Loading[[]Movie]())
	}
	return &Collections{
		service: service,
		cache:   cache,
		states:  states,
		seq:     make(map[Kind]uint64),
		logger:  logger.With().Str("component", "collections").Logger(),
	}
}

// SetBroadcaster sets the hub receiving state changes.
func (c *Collections) SetBroadcaster(hub Broadcaster) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hub = hub
}

// Cache returns the snapshot cache fed by this coordinator.
func (c *Collections) Cache() *Cache {
	return c.cache
}

// Load fetches every collection concurrently. Each collection succeeds or
// fails on its own; the first failure is returned for logging.
func (c *Collections) Load(ctx context.Context) error {
	var g errgroup.Group
	for _, kind := range AllKinds {
		g.Go(func() error {
			return c.LoadKind(ctx, kind)
		})
	}
	return g.Wait()
}

// Retry reloads every collection.
func (c *Collections) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

// LoadKind fetches the first page of one collection. A failure clears the
// cached snapshot so local search does not serve stale entries.
func (c *Collections) LoadKind(ctx context.Context, kind Kind) error {
	state, ok := c.states[kind]
	if !ok {
		_, err := ParseKind(string(kind))
		return err
	}

	c.mu.Lock()
	c.seq[kind]++
	gen := c.seq[kind]
	c.mu.Unlock()

	c.publish(kind, gen, state, uistate.Loading[[]Movie](), nil)

	movies, err := c.service.FetchCollection(ctx, kind, 1)
	if err != nil {
		c.logger.Warn().Err(err).Str("kind", string(kind)).Msg("Failed to load collection")
		c.publish(kind, gen, state, uistate.Failure[[]Movie](err), func() { c.cache.Clear(kind) })
		return err
	}

	c.publish(kind, gen, state, uistate.Success(movies), func() { c.cache.Put(kind, movies) })
	c.logger.Debug().Str("kind", string(kind)).Int("count", len(movies)).Msg("Loaded collection")
	return nil
}

// publish sets the state and runs apply if gen is still the latest load of
// kind. Results of superseded loads are dropped.
func (c *Collections) publish(kind Kind, gen uint64, state *observe.Value[CollectionState], s CollectionState, apply func()) {
	c.mu.Lock()
	if c.seq[kind] != gen {
		c.mu.Unlock()
		return
	}
	if apply != nil {
		apply()
	}
	state.Set(s)
	hub := c.hub
	c.mu.Unlock()

	if hub != nil {
		if err := hub.Broadcast("collections:state", CollectionEvent{Kind: kind, State: s}); err != nil {
			c.logger.Debug().Err(err).Msg("Failed to broadcast collection state")
		}
	}
}

// State returns the current envelope of one collection.
func (c *Collections) State(kind Kind) (CollectionState, bool) {
	state, ok := c.states[kind]
	if !ok {
		return CollectionState{}, false
	}
	return state.Get(), true
}

// States returns the current envelope of every collection.
func (c *Collections) States() map[Kind]CollectionState {
	out := make(map[Kind]CollectionState, len(c.states))
	for k, v := range c.states {
		out[k] = v.Get()
	}
	return out
}

// Watch streams the envelope of one collection until ctx ends. It returns nil
// for an unknown kind.
func (c *Collections) Watch(ctx context.Context, kind Kind) <-chan CollectionState {
	state, ok := c.states[kind]
	if !ok {
		return nil
	}
	return state.Subscribe(ctx)
}
