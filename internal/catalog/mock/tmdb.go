// Package mock provides an in-memory TMDB client for developer mode and tests.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/marquee/marquee/internal/catalog/tmdb"
	"github.com/marquee/marquee/internal/uistate"
)

// SearchFunc overrides the mock search behaviour.
type SearchFunc func(ctx context.Context, query string, page int) (*tmdb.MovieListResponse, error)

// TMDBClient is a mock implementation of the TMDB client.
// Failures can be injected per operation with SetError.
type TMDBClient struct {
	mu     sync.Mutex
	lists  map[string][]tmdb.MovieResult
	errors map[string]error
	calls  map[string]int
	search SearchFunc
}

// NewTMDBClient creates a mock client serving the built-in sample catalog.
func NewTMDBClient() *TMDBClient {
	lists := make(map[string][]tmdb.MovieResult, len(mockLists))
	for name, ids := range mockLists {
		for _, id := range ids {
			lists[name] = append(lists[name], resultFor(id))
		}
	}
	return &TMDBClient{
		lists:  lists,
		errors: make(map[string]error),
		calls:  make(map[string]int),
	}
}

// SetList replaces the contents of a movie list.
func (c *TMDBClient) SetList(list string, movies []tmdb.MovieResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[list] = movies
}

// SetError makes an operation fail. Keys are "list:<name>", "search",
// "movie", "credits", "reviews", "videos" and "test". A nil err clears it.
func (c *TMDBClient) SetError(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.errors, op)
		return
	}
	c.errors[op] = err
}

// SetSearchFunc overrides SearchMovies.
func (c *TMDBClient) SetSearchFunc(fn SearchFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = fn
}

// Calls returns how many times an operation was invoked.
func (c *TMDBClient) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *TMDBClient) record(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[op]++
	return c.errors[op]
}

func (c *TMDBClient) Name() string {
	return "tmdb-mock"
}

func (c *TMDBClient) IsConfigured() bool {
	return true
}

func (c *TMDBClient) Test(ctx context.Context) error {
	return c.record("test")
}

func (c *TMDBClient) GetImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + path
}

func (c *TMDBClient) ListMovies(ctx context.Context, list string, page int) (*tmdb.MovieListResponse, error) {
	if err := c.record("list:" + list); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &tmdb.RequestError{Kind: uistate.KindCancelled, Path: "/movie/" + list, Err: err}
	}

	c.mu.Lock()
	results := append([]tmdb.MovieResult(nil), c.lists[list]...)
	c.mu.Unlock()

	return &tmdb.MovieListResponse{Page: 1, TotalPages: 1, TotalResults: len(results), Results: results}, nil
}

func (c *TMDBClient) SearchMovies(ctx context.Context, query string, page int) (*tmdb.MovieListResponse, error) {
	if err := c.record("search"); err != nil {
		return nil, err
	}

	c.mu.Lock()
	fn := c.search
	c.mu.Unlock()
	if fn != nil {
		return fn(ctx, query, page)
	}

	query = strings.ToLower(query)
	var results []tmdb.MovieResult
	for i := range mockMovies {
		movie := &mockMovies[i]
		if strings.Contains(strings.ToLower(movie.Title), query) {
			results = append(results, resultFor(movie.ID))
		}
	}

	return &tmdb.MovieListResponse{Page: 1, TotalPages: 1, TotalResults: len(results), Results: results}, nil
}

func (c *TMDBClient) GetMovie(ctx context.Context, id int) (*tmdb.MovieDetails, error) {
	if err := c.record("movie"); err != nil {
		return nil, err
	}
	for i := range mockMovies {
		if mockMovies[i].ID == id {
			details := mockMovies[i]
			return &details, nil
		}
	}
	return nil, notFound(fmt.Sprintf("/movie/%d", id))
}

func (c *TMDBClient) GetMovieCredits(ctx context.Context, id int) (*tmdb.CreditsResponse, error) {
	if err := c.record("credits"); err != nil {
		return nil, err
	}
	cast, ok := mockCast[id]
	if !ok {
		cast = defaultCast
	}
	return &tmdb.CreditsResponse{ID: id, Cast: cast}, nil
}

func (c *TMDBClient) GetMovieReviews(ctx context.Context, id, page int) (*tmdb.ReviewsResponse, error) {
	if err := c.record("reviews"); err != nil {
		return nil, err
	}
	if page > 1 {
		return &tmdb.ReviewsResponse{ID: id, Page: page, TotalPages: 1}, nil
	}
	return &tmdb.ReviewsResponse{
		ID:         id,
		Page:       1,
		TotalPages: 1,
		Results: []tmdb.Review{
			{ID: fmt.Sprintf("mock-review-%d", id), Author: "critic", Content: "A remarkable piece of filmmaking."},
		},
	}, nil
}

func (c *TMDBClient) GetMovieVideos(ctx context.Context, id int) (*tmdb.VideosResponse, error) {
	if err := c.record("videos"); err != nil {
		return nil, err
	}
	return &tmdb.VideosResponse{
		ID: id,
		Results: []tmdb.Video{
			{ID: fmt.Sprintf("%d-teaser", id), Key: fmt.Sprintf("mock_teaser_%d", id), Name: "Teaser", Site: "YouTube", Type: "Teaser"},
			{ID: fmt.Sprintf("%d-vimeo", id), Key: fmt.Sprintf("mock_vimeo_%d", id), Name: "Featurette", Site: "Vimeo", Type: "Featurette"},
			{ID: fmt.Sprintf("%d-trailer", id), Key: fmt.Sprintf("mock_trailer_%d", id), Name: "Official Trailer", Site: "YouTube", Type: "Trailer", Official: true},
		},
	}, nil
}

func notFound(path string) error {
	return &tmdb.RequestError{Kind: uistate.KindNotFound, Status: 404, Path: path, Err: tmdb.ErrNotFound}
}

func resultFor(id int) tmdb.MovieResult {
	for i := range mockMovies {
		m := &mockMovies[i]
		if m.ID == id {
			return tmdb.MovieResult{
				ID:           m.ID,
				Title:        m.Title,
				Overview:     m.Overview,
				ReleaseDate:  m.ReleaseDate,
				PosterPath:   m.PosterPath,
				BackdropPath: m.BackdropPath,
				VoteAverage:  m.VoteAverage,
				VoteCount:    m.VoteCount,
			}
		}
	}
	return tmdb.MovieResult{ID: id, Title: fmt.Sprintf("Movie %d", id)}
}
