package logger

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

const defaultBufferSize = 1000

// Broadcaster fans a typed message out to connected clients.
type Broadcaster interface {
	Broadcast(msgType string, payload any) error
}

// LogEntry is a parsed log line as served to clients.
type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Component string         `json:"component,omitempty"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// LogBroadcaster is an io.Writer that parses zerolog JSON lines, keeps the most
// recent ones and forwards each to the hub as a "logs:entry" message.
type LogBroadcaster struct {
	mu     sync.RWMutex
	hub    Broadcaster
	buffer *RingBuffer[LogEntry]
}

// NewLogBroadcaster creates a broadcaster. hub may be nil until SetHub is called.
func NewLogBroadcaster(hub Broadcaster, bufferSize int) *LogBroadcaster {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &LogBroadcaster{
		hub:    hub,
		buffer: NewRingBuffer[LogEntry](bufferSize),
	}
}

// SetHub sets the hub receiving entries.
func (b *LogBroadcaster) SetHub(hub Broadcaster) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hub = hub
}

// Write implements io.Writer.
func (b *LogBroadcaster) Write(p []byte) (int, error) {
	entry, ok := parseLogEntry(p)
	if !ok {
		return len(p), nil
	}

	b.buffer.Push(entry)

	b.mu.RLock()
	hub := b.hub
	b.mu.RUnlock()

	if hub != nil {
		_ = hub.Broadcast("logs:entry", entry)
	}
	return len(p), nil
}

// GetRecentLogs returns buffered entries, oldest first.
func (b *LogBroadcaster) GetRecentLogs() []LogEntry {
	return b.buffer.GetAll()
}

func parseLogEntry(data []byte) (LogEntry, bool) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return LogEntry{}, false
	}

	take := func(key string) string {
		v, _ := fields[key].(string)
		delete(fields, key)
		return v
	}

	entry := LogEntry{
		Timestamp: take(zerolog.TimestampFieldName),
		Level:     take(zerolog.LevelFieldName),
		Component: take("component"),
		Message:   take(zerolog.MessageFieldName),
	}
	if len(fields) > 0 {
		entry.Fields = fields
	}
	return entry, true
}
