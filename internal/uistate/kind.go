package uistate

import (
	"context"
	"errors"
)

// Kind classifies a failure crossing the core boundary.
type Kind string

const (
	KindTransport     Kind = "transport"
	KindRemote        Kind = "remote"
	KindNotFound      Kind = "not_found"
	KindDecode        Kind = "decode"
	KindCancelled     Kind = "cancelled"
	KindStorage       Kind = "storage"
	KindConfiguration Kind = "configuration"
	KindUnknown       Kind = "unknown"
)

// Classified is implemented by errors that know their failure kind.
type Classified interface {
	error
	FailureKind() Kind
}

// KindOf walks the error chain and returns the first explicit kind found.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var classified Classified
	if errors.As(err, &classified) {
		return classified.FailureKind()
	}

	switch {
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTransport
	}
	return KindUnknown
}
