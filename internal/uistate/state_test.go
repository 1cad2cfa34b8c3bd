package uistate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storageErr struct{}

func (storageErr) Error() string     { return "disk full" }
func (storageErr) FailureKind() Kind { return KindStorage }

type emptyErr struct{}

func (emptyErr) Error() string { return "" }

func TestFrom(t *testing.T) {
	ok := From([]int{1, 2}, nil)
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, []int{1, 2}, ok.Data)

	failed := From([]int{1, 2}, errors.New("boom"))
	assert.True(t, failed.IsError())
	assert.Equal(t, "boom", failed.Message)
	assert.Nil(t, failed.DataOrZero())
}

func TestFailure_DefaultMessage(t *testing.T) {
	s := Failure[string](emptyErr{})
	assert.Equal(t, DefaultErrorMessage, s.Message)
	assert.Equal(t, KindUnknown, s.Kind)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"classified", storageErr{}, KindStorage},
		{"wrapped classified", fmt.Errorf("toggle: %w", storageErr{}), KindStorage},
		{"cancelled", fmt.Errorf("search: %w", context.Canceled), KindCancelled},
		{"deadline", context.DeadlineExceeded, KindTransport},
		{"plain", errors.New("x"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, Success(1).HTTPStatus())
	assert.Equal(t, http.StatusAccepted, Loading[int]().HTTPStatus())
	assert.Equal(t, http.StatusNotFound, Errorf[int](KindNotFound, "gone").HTTPStatus())
	assert.Equal(t, http.StatusBadGateway, Errorf[int](KindTransport, "down").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Failure[int](storageErr{}).HTTPStatus())
}

func TestMarshalJSON_NoPartialPayload(t *testing.T) {
	b, err := json.Marshal(Loading[[]string]())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"loading"}`, string(b))

	b, err = json.Marshal(Success([]string{"a"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","data":["a"]}`, string(b))

	// An error envelope never carries data, even if a caller filled it in.
	s := Errorf[[]string](KindRemote, "rejected")
	s.Data = []string{"stale"}
	b, err = json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","message":"rejected","kind":"remote"}`, string(b))
}

func TestUnmarshalJSON(t *testing.T) {
	var s State[[]string]
	require.NoError(t, json.Unmarshal([]byte(`{"status":"success","data":["a","b"]}`), &s))
	assert.Equal(t, Success([]string{"a", "b"}), s)

	require.NoError(t, json.Unmarshal([]byte(`{"status":"error","kind":"decode"}`), &s))
	assert.Equal(t, DefaultErrorMessage, s.Message)
	assert.Equal(t, KindDecode, s.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"weird"}`), &s))
}
