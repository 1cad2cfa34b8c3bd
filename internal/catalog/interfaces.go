package catalog

import (
	"context"

	"github.com/marquee/marquee/internal/catalog/tmdb"
)

// TMDBClient defines the remote catalog operations the service depends on.
type TMDBClient interface {
	Name() string
	IsConfigured() bool
	Test(ctx context.Context) error
	ListMovies(ctx context.Context, list string, page int) (*tmdb.MovieListResponse, error)
	SearchMovies(ctx context.Context, query string, page int) (*tmdb.MovieListResponse, error)
	GetMovie(ctx context.Context, id int) (*tmdb.MovieDetails, error)
	GetMovieCredits(ctx context.Context, id int) (*tmdb.CreditsResponse, error)
	GetMovieReviews(ctx context.Context, id, page int) (*tmdb.ReviewsResponse, error)
	GetMovieVideos(ctx context.Context, id int) (*tmdb.VideosResponse, error)
	GetImageURL(path, size string) string
}

// Broadcaster pushes an event to connected clients.
type Broadcaster interface {
	Broadcast(msgType string, payload any) error
}
