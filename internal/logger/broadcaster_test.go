package logger

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHub struct {
	mu       sync.Mutex
	messages []string
}

func (h *recordingHub) Broadcast(msgType string, _ any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msgType)
	return nil
}

func TestLogger_StreamsEntries(t *testing.T) {
	var out bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &out, EnableStreaming: true, BufferSize: 2})

	hub := &recordingHub{}
	log.SetBroadcastHub(hub)

	sub := log.WithComponent("search")
	sub.Info().Str("query", "matrix").Msg("first")
	sub.Info().Msg("second")
	sub.Warn().Msg("third")

	entries := log.GetRecentLogs()
	require.Len(t, entries, 2, "ring buffer keeps only the newest entries")
	assert.Equal(t, "second", entries[0].Message)
	assert.Equal(t, "third", entries[1].Message)
	assert.Equal(t, "warn", entries[1].Level)
	assert.Equal(t, "search", entries[1].Component)

	assert.Len(t, hub.messages, 3)
	assert.Contains(t, out.String(), `"query":"matrix"`)
}

func TestLogBroadcaster_IgnoresMalformed(t *testing.T) {
	b := NewLogBroadcaster(nil, 10)
	n, err := b.Write([]byte("not json"))
	require.NoError(t, err)
	assert.Equal(t, len("not json"), n)
	assert.Empty(t, b.GetRecentLogs())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "warn", parseLevel("WARNING").String())
	assert.Equal(t, "info", parseLevel("bogus").String())
}

func TestRingBuffer(t *testing.T) {
	r := NewRingBuffer[int](3)
	for i := 1; i <= 5; i++ {
		r.Push(i)
	}
	assert.Equal(t, []int{3, 4, 5}, r.GetAll())
	assert.Equal(t, 3, r.Len())

	r.Clear()
	assert.Empty(t, r.GetAll())
}
