package catalog

import (
	"slices"
	"strings"

	"github.com/marquee/marquee/internal/catalog/tmdb"
)

// MaxVideos caps the number of videos exposed for a movie.
const MaxVideos = 10

// RankVideos keeps YouTube videos, moves trailers to the front and caps the
// list at MaxVideos. Relative order within trailers and non-trailers is kept.
func RankVideos(videos []tmdb.Video) []Video {
	out := make([]Video, 0, len(videos))
	for _, v := range videos {
		if !strings.EqualFold(v.Site, "YouTube") {
			continue
		}
		out = append(out, Video{
			ID:       v.ID,
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		})
	}

	slices.SortStableFunc(out, func(a, b Video) int {
		return trailerRank(a) - trailerRank(b)
	})

	if len(out) > MaxVideos {
		out = out[:MaxVideos]
	}
	return out
}

func trailerRank(v Video) int {
	if strings.EqualFold(v.Type, "Trailer") {
		return 0
	}
	return 1
}
