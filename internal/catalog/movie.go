package catalog

import (
	"fmt"

	"github.com/marquee/marquee/internal/catalog/tmdb"
)

// Kind names one of the curated movie collections.
type Kind string

const (
	KindNowPlaying Kind = "now_playing"
	KindUpcoming   Kind = "upcoming"
	KindTopRated   Kind = "top_rated"
	KindPopular    Kind = "popular"
)

// AllKinds lists every collection in the order local search reads them.
var AllKinds = []Kind{KindNowPlaying, KindUpcoming, KindTopRated, KindPopular}

// ParseKind validates a collection name.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown collection %q", s)
}

// Movie is a catalog entry. Genres and Runtime are only filled from the
// details endpoint.
type Movie struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	PosterPath   string   `json:"posterPath"`
	BackdropPath string   `json:"backdropPath"`
	Overview     string   `json:"overview"`
	VoteAverage  float64  `json:"voteAverage"`
	ReleaseDate  string   `json:"releaseDate"`
	Genres       []string `json:"genres"`
	Runtime      *int     `json:"runtime,omitempty"`
}

// CastMember is a credited actor.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character,omitempty"`
	ProfilePath *string `json:"profilePath"`
}

// Review is a user review of a movie.
type Review struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// Video is a playable clip attached to a movie.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func movieFromResult(r tmdb.MovieResult) Movie {
	return Movie{
		ID:           r.ID,
		Title:        r.Title,
		PosterPath:   deref(r.PosterPath),
		BackdropPath: deref(r.BackdropPath),
		Overview:     r.Overview,
		VoteAverage:  r.VoteAverage,
		ReleaseDate:  r.ReleaseDate,
		Genres:       []string{},
	}
}

func moviesFromResults(results []tmdb.MovieResult, limit int) []Movie {
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	movies := make([]Movie, len(results))
	for i, r := range results {
		movies[i] = movieFromResult(r)
	}
	return movies
}

func movieFromDetails(d *tmdb.MovieDetails) Movie {
	genres := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		genres[i] = g.Name
	}
	return Movie{
		ID:           d.ID,
		Title:        d.Title,
		PosterPath:   deref(d.PosterPath),
		BackdropPath: deref(d.BackdropPath),
		Overview:     d.Overview,
		VoteAverage:  d.VoteAverage,
		ReleaseDate:  d.ReleaseDate,
		Genres:       genres,
		Runtime:      d.Runtime,
	}
}

func castFromCredits(c *tmdb.CreditsResponse) []CastMember {
	cast := make([]CastMember, len(c.Cast))
	for i, m := range c.Cast {
		cast[i] = CastMember{
			ID:          m.ID,
			Name:        m.Name,
			Character:   m.Character,
			ProfilePath: m.ProfilePath,
		}
	}
	return cast
}

func reviewsFromResponse(r *tmdb.ReviewsResponse) []Review {
	reviews := make([]Review, len(r.Results))
	for i, rv := range r.Results {
		reviews[i] = Review{ID: rv.ID, Author: rv.Author, Content: rv.Content}
	}
	return reviews
}
