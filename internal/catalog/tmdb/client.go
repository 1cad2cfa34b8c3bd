package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/marquee/marquee/internal/config"
	"github.com/marquee/marquee/internal/uistate"
)

// Lists served by the movie list endpoints.
const (
	ListPopular    = "popular"
	ListNowPlaying = "now_playing"
	ListUpcoming   = "upcoming"
	ListTopRated   = "top_rated"
)

// Client is a TMDB API client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = int(math.Max(1, math.Ceil(cfg.RequestsPerSecond)))
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.TimeoutDuration()},
		config:     cfg,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger.With().Str("component", "tmdb").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "tmdb"
}

// IsConfigured returns true if an access token is set.
func (c *Client) IsConfigured() bool {
	return c.config.Token != ""
}

// Test verifies connectivity to the TMDB API by making a configuration request.
func (c *Client) Test(ctx context.Context) error {
	var result struct {
		Images struct {
			SecureBaseURL string `json:"secure_base_url"`
		} `json:"images"`
	}
	return c.doRequest(ctx, "/configuration", nil, &result)
}

// ListMovies fetches one page of a movie list (popular, now_playing, upcoming, top_rated).
func (c *Client) ListMovies(ctx context.Context, list string, page int) (*MovieListResponse, error) {
	switch list {
	case ListPopular, ListNowPlaying, ListUpcoming, ListTopRated:
	default:
		return nil, fmt.Errorf("unknown movie list %q", list)
	}

	var response MovieListResponse
	if err := c.doRequest(ctx, "/movie/"+list, pageParams(page), &response); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("list", list).
		Int("page", response.Page).
		Int("results", len(response.Results)).
		Msg("Fetched movie list")

	return &response, nil
}

// SearchMovies searches movies by free-text query.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MovieListResponse, error) {
	params := pageParams(page)
	params.Set("query", query)
	params.Set("include_adult", "false")

	var response MovieListResponse
	if err := c.doRequest(ctx, "/search/movie", params, &response); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(response.Results)).
		Msg("Movie search completed")

	return &response, nil
}

// GetMovie gets detailed movie info by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, id int) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.doRequest(ctx, fmt.Sprintf("/movie/%d", id), nil, &details); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("id", id).
		Str("title", details.Title).
		Msg("Got movie details")

	return &details, nil
}

// GetMovieCredits gets the cast of a movie.
func (c *Client) GetMovieCredits(ctx context.Context, id int) (*CreditsResponse, error) {
	var credits CreditsResponse
	if err := c.doRequest(ctx, fmt.Sprintf("/movie/%d/credits", id), nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// GetMovieReviews gets one page of user reviews for a movie.
func (c *Client) GetMovieReviews(ctx context.Context, id, page int) (*ReviewsResponse, error) {
	var reviews ReviewsResponse
	if err := c.doRequest(ctx, fmt.Sprintf("/movie/%d/reviews", id), pageParams(page), &reviews); err != nil {
		return nil, err
	}
	return &reviews, nil
}

// GetMovieVideos gets the videos attached to a movie.
func (c *Client) GetMovieVideos(ctx context.Context, id int) (*VideosResponse, error) {
	var videos VideosResponse
	if err := c.doRequest(ctx, fmt.Sprintf("/movie/%d/videos", id), nil, &videos); err != nil {
		return nil, err
	}
	return &videos, nil
}

// GetImageURL returns the full URL for an image path at the given size.
func (c *Client) GetImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	return fmt.Sprintf("%s/%s%s", strings.TrimRight(c.config.ImageBaseURL, "/"), size, path)
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return params
}

// doRequest performs a GET against the API and decodes the JSON body into result.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values, result any) error {
	if !c.IsConfigured() {
		return &RequestError{Kind: uistate.KindConfiguration, Path: path, Err: ErrTokenMissing}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return c.transportError(ctx, path, err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("language", c.config.Language)
	reqURL := fmt.Sprintf("%s%s?%s", c.config.BaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("HTTP request failed")
		return c.transportError(ctx, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("path", path).
				Str("message", errResp.StatusMessage).
				Msg("TMDB API error")
		}

		reqErr := &RequestError{Kind: uistate.KindRemote, Status: resp.StatusCode, Path: path}
		switch resp.StatusCode {
		case http.StatusNotFound:
			reqErr.Kind = uistate.KindNotFound
			reqErr.Err = ErrNotFound
		case http.StatusUnauthorized:
			reqErr.Err = ErrUnauthorized
		case http.StatusTooManyRequests:
			reqErr.Err = ErrRateLimited
		default:
			reqErr.Err = ErrAPIError
		}
		return reqErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		if ctx.Err() != nil {
			return c.transportError(ctx, path, err)
		}
		return &RequestError{
			Kind: uistate.KindDecode,
			Path: path,
			Err:  fmt.Errorf("%w: %w", ErrInvalidFormat, err),
		}
	}

	return nil
}

// transportError classifies a failure that happened before a response arrived.
// A caller cancelling its context is reported as cancelled; anything else,
// deadlines included, is a transport failure.
func (c *Client) transportError(ctx context.Context, path string, err error) error {
	kind := uistate.KindTransport
	if errors.Is(ctx.Err(), context.Canceled) {
		kind = uistate.KindCancelled
		err = fmt.Errorf("%w: %w", context.Canceled, err)
	}
	return &RequestError{Kind: kind, Path: path, Err: err}
}
