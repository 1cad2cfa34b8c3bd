package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/marquee/marquee/internal/catalog/mock"
)

func setupTestHandlers(t *testing.T) (*Handlers, *mock.TMDBClient) {
	t.Helper()
	logger := zerolog.Nop()
	client := mock.NewTMDBClient()
	svc := NewServiceWithClient(client, 20, &logger)
	return NewHandlers(svc, NewCollections(svc, NewCache(), &logger)), client
}

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandlers_GetCollection_Loading(t *testing.T) {
	handlers, _ := setupTestHandlers(t)

	c, rec := newContext(http.MethodGet, "/api/v1/collections/popular")
	c.SetParamNames("kind")
	c.SetParamValues("popular")

	if err := handlers.GetCollection(c); err != nil {
		t.Fatalf("GetCollection() error = %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Errorf("expected status 202 while loading, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "loading" {
		t.Errorf("status = %v, want loading", body["status"])
	}
	if _, ok := body["data"]; ok {
		t.Error("loading envelope must not carry data")
	}
}

func TestHandlers_GetCollection_UnknownKind(t *testing.T) {
	handlers, _ := setupTestHandlers(t)

	c, _ := newContext(http.MethodGet, "/api/v1/collections/trending")
	c.SetParamNames("kind")
	c.SetParamValues("trending")

	err := handlers.GetCollection(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 HTTPError, got %v", err)
	}
}

func TestHandlers_RetryCollections(t *testing.T) {
	handlers, _ := setupTestHandlers(t)

	c, rec := newContext(http.MethodPost, "/api/v1/collections/retry")
	if err := handlers.RetryCollections(c); err != nil {
		t.Fatalf("RetryCollections() error = %v", err)
	}

	var body map[string]struct {
		Status string            `json:"status"`
		Data   []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, k := range AllKinds {
		if body[string(k)].Status != "success" {
			t.Errorf("collection %s status = %q", k, body[string(k)].Status)
		}
	}
}

func TestHandlers_GetMovie(t *testing.T) {
	handlers, _ := setupTestHandlers(t)

	c, rec := newContext(http.MethodGet, "/api/v1/movies/603")
	c.SetParamNames("id")
	c.SetParamValues("603")

	if err := handlers.GetMovie(c); err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var view struct {
		ID    int `json:"id"`
		Movie struct {
			Status string `json:"status"`
			Data   Movie  `json:"data"`
		} `json:"movie"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if view.Movie.Data.Title != "The Matrix" {
		t.Errorf("expected title 'The Matrix', got %q", view.Movie.Data.Title)
	}
}

func TestHandlers_GetMovie_NotFound(t *testing.T) {
	handlers, _ := setupTestHandlers(t)

	c, rec := newContext(http.MethodGet, "/api/v1/movies/1")
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handlers.GetMovie(c); err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandlers_InvalidID(t *testing.T) {
	handlers, _ := setupTestHandlers(t)

	c, _ := newContext(http.MethodGet, "/api/v1/movies/abc/videos")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := handlers.GetVideos(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 HTTPError, got %v", err)
	}
}

func TestHandlers_GetReviews_Page(t *testing.T) {
	handlers, client := setupTestHandlers(t)

	c, rec := newContext(http.MethodGet, "/api/v1/movies/603/reviews?page=2")
	c.SetParamNames("id")
	c.SetParamValues("603")

	if err := handlers.GetReviews(c); err != nil {
		t.Fatalf("GetReviews() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if client.Calls("reviews") != 1 {
		t.Errorf("expected one reviews call, got %d", client.Calls("reviews"))
	}
}
