package bookmarks

import (
	"errors"
	"fmt"

	"github.com/marquee/marquee/internal/uistate"
)

var (
	ErrNotFound     = errors.New("bookmark not found")
	ErrInvalidMovie = errors.New("movie id is required")
)

// StoreError is a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("bookmark store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// FailureKind implements uistate.Classified.
func (e *StoreError) FailureKind() uistate.Kind {
	return uistate.KindStorage
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
