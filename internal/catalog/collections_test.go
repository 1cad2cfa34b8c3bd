package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee/marquee/internal/catalog/tmdb"
	"github.com/marquee/marquee/internal/uistate"
)

type recordingHub struct {
	mu     sync.Mutex
	events []CollectionEvent
}

func (h *recordingHub) Broadcast(msgType string, payload any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ev, ok := payload.(CollectionEvent); ok && msgType == "collections:state" {
		h.events = append(h.events, ev)
	}
	return nil
}

func (h *recordingHub) statuses(kind Kind) []uistate.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []uistate.Status
	for _, ev := range h.events {
		if ev.Kind == kind {
			out = append(out, ev.State.Status)
		}
	}
	return out
}

func TestCollections_InitiallyLoading(t *testing.T) {
	svc, _ := newTestService(t)
	logger := zerolog.Nop()
	c := NewCollections(svc, NewCache(), &logger)

	for _, k := range AllKinds {
		state, ok := c.State(k)
		require.True(t, ok)
		assert.True(t, state.IsLoading(), "kind %s", k)
	}
}

func TestCollections_Load(t *testing.T) {
	svc, _ := newTestService(t)
	logger := zerolog.Nop()
	cache := NewCache()
	c := NewCollections(svc, cache, &logger)
	hub := &recordingHub{}
	c.SetBroadcaster(hub)

	require.NoError(t, c.Load(context.Background()))

	for _, k := range AllKinds {
		state, _ := c.State(k)
		require.True(t, state.IsSuccess(), "kind %s", k)
		assert.Equal(t, state.Data, cache.Snapshot(k))
		assert.Equal(t, []uistate.Status{uistate.StatusLoading, uistate.StatusSuccess}, hub.statuses(k))
	}
}

func TestCollections_FailureIsIndependent(t *testing.T) {
	svc, client := newTestService(t)
	logger := zerolog.Nop()
	cache := NewCache()
	c := NewCollections(svc, cache, &logger)

	require.NoError(t, c.Load(context.Background()))
	require.NotEmpty(t, cache.Snapshot(KindUpcoming))

	boom := &tmdb.RequestError{Kind: uistate.KindTransport, Path: "/movie/upcoming", Err: errors.New("connection refused")}
	client.SetError("list:"+tmdb.ListUpcoming, boom)

	err := c.Retry(context.Background())
	require.ErrorIs(t, err, boom)

	upcoming, _ := c.State(KindUpcoming)
	assert.True(t, upcoming.IsError())
	assert.Equal(t, uistate.KindTransport, upcoming.Kind)
	assert.Empty(t, cache.Snapshot(KindUpcoming), "failed fetch clears the snapshot")

	for _, k := range []Kind{KindNowPlaying, KindTopRated, KindPopular} {
		state, _ := c.State(k)
		assert.True(t, state.IsSuccess(), "kind %s unaffected", k)
	}

	client.SetError("list:"+tmdb.ListUpcoming, nil)
	require.NoError(t, c.LoadKind(context.Background(), KindUpcoming))
	upcoming, _ = c.State(KindUpcoming)
	assert.True(t, upcoming.IsSuccess())
}

func TestCollections_Watch(t *testing.T) {
	svc, _ := newTestService(t)
	logger := zerolog.Nop()
	c := NewCollections(svc, NewCache(), &logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := c.Watch(ctx, KindPopular)
	require.NotNil(t, ch)
	first := <-ch
	assert.True(t, first.IsLoading())

	go func() { _ = c.LoadKind(context.Background(), KindPopular) }()

	require.Eventually(t, func() bool {
		select {
		case s := <-ch:
			return s.IsSuccess()
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	assert.Nil(t, c.Watch(ctx, Kind("bogus")))
}

func TestCollections_UnknownKind(t *testing.T) {
	svc, _ := newTestService(t)
	logger := zerolog.Nop()
	c := NewCollections(svc, NewCache(), &logger)

	assert.Error(t, c.LoadKind(context.Background(), Kind("trending")))
	_, ok := c.State(Kind("trending"))
	assert.False(t, ok)
}
