package bookmarks

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// bookmarkTitles implements fuzzy.Source over bookmark titles.
type bookmarkTitles []BookmarkedMovie

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// Filter fuzzy-matches query against bookmark titles and returns the matches,
// best first. A blank query returns movies unchanged.
func Filter(movies []BookmarkedMovie, query string) []BookmarkedMovie {
	query = strings.TrimSpace(query)
	if query == "" {
		return movies
	}

	matches := fuzzy.FindFrom(query, bookmarkTitles(movies))

	out := make([]BookmarkedMovie, len(matches))
	for i, m := range matches {
		out[i] = movies[m.Index]
	}
	return out
}
