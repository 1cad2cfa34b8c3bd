package search

import (
	"strings"

	"github.com/marquee/marquee/internal/catalog"
)

// LocalSource exposes the movies already loaded into memory.
type LocalSource interface {
	All() []catalog.Movie
}

// MatchLocal returns movies whose title or overview contains query,
// ignoring case. The first occurrence of each id wins and at most limit
// movies are returned when limit is positive.
func MatchLocal(movies []catalog.Movie, query string, limit int) []catalog.Movie {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []catalog.Movie{}
	}

	seen := make(map[int]struct{})
	out := []catalog.Movie{}
	for _, m := range movies {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		if !strings.Contains(strings.ToLower(m.Title), needle) &&
			!strings.Contains(strings.ToLower(m.Overview), needle) {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
