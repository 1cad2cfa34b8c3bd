package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/marquee/marquee/internal/bookmarks"
	"github.com/marquee/marquee/internal/catalog"
)

// searchQueryCommand is the payload of an inbound "search:query" message.
type searchQueryCommand struct {
	Query string `json:"query"`
}

// collectionsRetryCommand is the payload of an inbound "collections:retry"
// message. An empty kind retries every collection.
type collectionsRetryCommand struct {
	Kind string `json:"kind"`
}

// registerRealtimeHandlers wires inbound WebSocket commands to the
// coordinators. Results flow back through the regular broadcasts.
func (s *Server) registerRealtimeHandlers() {
	s.hub.Handle("search:query", func(ctx context.Context, payload json.RawMessage) error {
		var cmd searchQueryCommand
		if err := decodePayload(payload, &cmd); err != nil {
			return err
		}
		s.searchCoordinator.UpdateQuery(cmd.Query)
		return nil
	})

	s.hub.Handle("search:clear", func(ctx context.Context, payload json.RawMessage) error {
		s.searchCoordinator.Clear()
		return nil
	})

	s.hub.Handle("collections:retry", func(ctx context.Context, payload json.RawMessage) error {
		var cmd collectionsRetryCommand
		if err := decodePayload(payload, &cmd); err != nil {
			return err
		}
		if cmd.Kind == "" {
			_ = s.collections.Retry(ctx)
			return nil
		}

		kind, err := catalog.ParseKind(cmd.Kind)
		if err != nil {
			return err
		}
		_ = s.collections.LoadKind(ctx, kind)
		return nil
	})

	s.hub.Handle("bookmarks:toggle", func(ctx context.Context, payload json.RawMessage) error {
		var cmd bookmarks.ToggleRequest
		if err := decodePayload(payload, &cmd); err != nil {
			return err
		}
		if cmd.Movie.ID <= 0 {
			return bookmarks.ErrInvalidMovie
		}
		return s.bookmarkCoordinator.Toggle(ctx, cmd.Movie, cmd.Bookmarked)
	})
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
