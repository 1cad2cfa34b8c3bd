package tmdb

import (
	"errors"
	"fmt"

	"github.com/marquee/marquee/internal/uistate"
)

var (
	ErrTokenMissing  = errors.New("TMDB access token is not configured")
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("TMDB rejected the access token")
	ErrRateLimited   = errors.New("TMDB API rate limited")
	ErrAPIError      = errors.New("TMDB API error")
	ErrInvalidFormat = errors.New("malformed TMDB response")
)

// RequestError describes a failed call to the TMDB API.
type RequestError struct {
	Kind   uistate.Kind
	Status int // HTTP status, 0 when no response was received
	Path   string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("tmdb %s: status %d: %v", e.Path, e.Status, e.Err)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Path, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// FailureKind implements uistate.Classified.
func (e *RequestError) FailureKind() uistate.Kind {
	return e.Kind
}
