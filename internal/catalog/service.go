package catalog

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/marquee/marquee/internal/catalog/tmdb"
	"github.com/marquee/marquee/internal/config"
)

// DefaultMaxSearchResults caps remote search results.
const DefaultMaxSearchResults = 20

// Service maps remote catalog responses onto domain values.
type Service struct {
	tmdb       TMDBClient
	maxResults int
	logger     zerolog.Logger
}

// NewService creates a catalog service backed by the real TMDB client.
func NewService(cfg config.TMDBConfig, maxResults int, logger *zerolog.Logger) *Service {
	return NewServiceWithClient(tmdb.NewClient(cfg, *logger), maxResults, logger)
}

// NewServiceWithClient creates a catalog service with a custom client (for testing/mocking).
func NewServiceWithClient(client TMDBClient, maxResults int, logger *zerolog.Logger) *Service {
	if maxResults <= 0 {
		maxResults = DefaultMaxSearchResults
	}
	return &Service{
		tmdb:       client,
		maxResults: maxResults,
		logger:     logger.With().Str("component", "catalog").Logger(),
	}
}

// Client returns the underlying remote client.
func (s *Service) Client() TMDBClient {
	return s.tmdb
}

// IsConfigured reports whether the remote client has credentials.
func (s *Service) IsConfigured() bool {
	return s.tmdb.IsConfigured()
}

// Test checks connectivity to the remote catalog.
func (s *Service) Test(ctx context.Context) error {
	return s.tmdb.Test(ctx)
}

// FetchCollection returns one page of a curated collection.
func (s *Service) FetchCollection(ctx context.Context, kind Kind, page int) ([]Movie, error) {
	resp, err := s.tmdb.ListMovies(ctx, string(kind), page)
	if err != nil {
		return nil, err
	}
	return moviesFromResults(resp.Results, 0), nil
}

// Search runs a remote title search. A blank query returns an empty list
// without contacting the remote. At most maxResults movies are returned in
// remote order.
func (s *Service) Search(ctx context.Context, query string, page int) ([]Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Movie{}, nil
	}

	resp, err := s.tmdb.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return moviesFromResults(resp.Results, s.maxResults), nil
}

// MaxResults returns the search result cap.
func (s *Service) MaxResults() int {
	return s.maxResults
}

// Details returns the full record of a movie, including runtime and genres.
func (s *Service) Details(ctx context.Context, id int) (Movie, error) {
	details, err := s.tmdb.GetMovie(ctx, id)
	if err != nil {
		return Movie{}, err
	}
	return movieFromDetails(details), nil
}

// Credits returns the cast of a movie.
func (s *Service) Credits(ctx context.Context, id int) ([]CastMember, error) {
	credits, err := s.tmdb.GetMovieCredits(ctx, id)
	if err != nil {
		return nil, err
	}
	return castFromCredits(credits), nil
}

// Reviews returns one page of reviews for a movie.
func (s *Service) Reviews(ctx context.Context, id, page int) ([]Review, error) {
	reviews, err := s.tmdb.GetMovieReviews(ctx, id, page)
	if err != nil {
		return nil, err
	}
	return reviewsFromResponse(reviews), nil
}

// Videos returns the ranked YouTube videos of a movie.
func (s *Service) Videos(ctx context.Context, id int) ([]Video, error) {
	videos, err := s.tmdb.GetMovieVideos(ctx, id)
	if err != nil {
		return nil, err
	}
	return RankVideos(videos.Results), nil
}
