package bookmarks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee/marquee/internal/testutil"
)

func setupTestHandlers(t *testing.T) (*Handlers, *Store) {
	t.Helper()
	store, _ := newTestStore(t)
	logger := store.logger
	return NewHandlers(store, NewCoordinator(store, &logger)), store
}

func jsonContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandlers_Toggle(t *testing.T) {
	h, store := setupTestHandlers(t)

	body := `{"movie":{"id":27205,"title":"Inception","voteAverage":8.4},"bookmarked":false}`
	c, rec := jsonContext(http.MethodPost, "/api/v1/bookmarks/toggle", body)
	require.NoError(t, h.Toggle(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Bookmarked)
	require.NotNil(t, resp.Movie)
	assert.Equal(t, "Inception", resp.Movie.Title)

	body = `{"movie":{"id":27205,"title":"Inception"},"bookmarked":true}`
	c, rec = jsonContext(http.MethodPost, "/api/v1/bookmarks/toggle", body)
	require.NoError(t, h.Toggle(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Bookmarked)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestHandlers_ToggleRejectsMissingID(t *testing.T) {
	h, _ := setupTestHandlers(t)

	c, _ := jsonContext(http.MethodPost, "/api/v1/bookmarks/toggle", `{"movie":{"title":"x"}}`)
	err := h.Toggle(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestHandlers_AddListFilterRemove(t *testing.T) {
	h, _ := setupTestHandlers(t)

	for _, body := range []string{
		`{"id":603,"title":"The Matrix"}`,
		`{"id":27205,"title":"Inception"}`,
	} {
		c, rec := jsonContext(http.MethodPost, "/api/v1/bookmarks", body)
		require.NoError(t, h.Add(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	c, rec := jsonContext(http.MethodGet, "/api/v1/bookmarks?q=matrix", "")
	require.NoError(t, h.List(c))

	var list struct {
		Status string            `json:"status"`
		Data   []BookmarkedMovie `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, "success", list.Status)
	require.Len(t, list.Data, 1)
	assert.Equal(t, 603, list.Data[0].ID)

	c, rec = jsonContext(http.MethodDelete, "/api/v1/bookmarks/603", "")
	c.SetParamNames("id")
	c.SetParamValues("603")
	require.NoError(t, h.Remove(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = jsonContext(http.MethodGet, "/api/v1/bookmarks/603", "")
	c.SetParamNames("id")
	c.SetParamValues("603")
	require.NoError(t, h.Get(c))

	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Bookmarked)
	assert.Nil(t, status.Movie)
}

func TestHandlers_StorageFailure(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	store := NewStore(tdb.Conn, &tdb.Logger)
	h := NewHandlers(store, NewCoordinator(store, &tdb.Logger))
	tdb.Close()

	body := `{"movie":{"id":27205,"title":"Inception"},"bookmarked":false}`
	c, rec := jsonContext(http.MethodPost, "/api/v1/bookmarks/toggle", body)
	require.NoError(t, h.Toggle(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "storage", resp["kind"])
	assert.NotEmpty(t, resp["message"])
}
