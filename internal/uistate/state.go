// Package uistate wraps asynchronous outcomes in a three-state envelope
// (loading, success, error) consumed by the presentation layer.
package uistate

import (
	"encoding/json"
	"errors"
	"net/http"
)

// DefaultErrorMessage is used when a failure carries no description.
const DefaultErrorMessage = "Error occurred"

// Status is the envelope tag.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is a tagged union over Loading, Success(data) and Error(message).
// Data is only meaningful when Status is StatusSuccess; Message and Kind only
// when Status is StatusError.
type State[T any] struct {
	Status  Status
	Data    T
	Message string
	Kind    Kind
}

// Loading returns a loading envelope.
func Loading[T any]() State[T] {
	return State[T]{Status: StatusLoading}
}

// Success returns a success envelope carrying data.
func Success[T any](data T) State[T] {
	return State[T]{Status: StatusSuccess, Data: data}
}

// Failure projects err into an error envelope.
func Failure[T any](err error) State[T] {
	return State[T]{
		Status:  StatusError,
		Message: MessageOf(err),
		Kind:    KindOf(err),
	}
}

// Errorf returns an error envelope with an explicit message and kind.
func Errorf[T any](kind Kind, message string) State[T] {
	if message == "" {
		message = DefaultErrorMessage
	}
	return State[T]{Status: StatusError, Message: message, Kind: kind}
}

// From maps a (data, err) pair to Success or Error.
func From[T any](data T, err error) State[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(data)
}

// MessageOf returns the human-readable description of err.
func MessageOf(err error) string {
	if err == nil || err.Error() == "" {
		return DefaultErrorMessage
	}
	return err.Error()
}

func (s State[T]) IsLoading() bool { return s.Status == StatusLoading }
func (s State[T]) IsSuccess() bool { return s.Status == StatusSuccess }
func (s State[T]) IsError() bool   { return s.Status == StatusError }

// DataOrZero returns the payload for a success envelope and the zero value otherwise.
func (s State[T]) DataOrZero() T {
	if s.Status == StatusSuccess {
		return s.Data
	}
	var zero T
	return zero
}

// HTTPStatus maps the envelope to a response status code.
func (s State[T]) HTTPStatus() int {
	switch s.Status {
	case StatusSuccess:
		return http.StatusOK
	case StatusLoading:
		return http.StatusAccepted
	}

	switch s.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConfiguration:
		return http.StatusServiceUnavailable
	case KindTransport, KindRemote, KindDecode:
		return http.StatusBadGateway
	case KindCancelled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

type wireState[T any] struct {
	Status  Status `json:"status"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
}

// MarshalJSON never emits a partially populated payload: data only appears on
// success, message and kind only on error.
func (s State[T]) MarshalJSON() ([]byte, error) {
	w := wireState[T]{Status: s.Status}
	switch s.Status {
	case StatusSuccess:
		data := s.Data
		w.Data = &data
	case StatusError:
		w.Message = s.Message
		w.Kind = s.Kind
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (s *State[T]) UnmarshalJSON(b []byte) error {
	var w wireState[T]
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	switch w.Status {
	case StatusLoading:
		*s = Loading[T]()
	case StatusSuccess:
		var data T
		if w.Data != nil {
			data = *w.Data
		}
		*s = Success(data)
	case StatusError:
		*s = Errorf[T](w.Kind, w.Message)
	default:
		return errors.New("uistate: unknown status " + string(w.Status))
	}
	return nil
}
