package search

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/marquee/marquee/internal/uistate"
)

// Handlers provides HTTP handlers for search.
type Handlers struct {
	coordinator *Coordinator
	remote      Searcher
}

// NewHandlers creates new search handlers. remote serves one-shot searches
// that bypass the debounced coordinator.
func NewHandlers(coordinator *Coordinator, remote Searcher) *Handlers {
	return &Handlers{
		coordinator: coordinator,
		remote:      remote,
	}
}

// RegisterRoutes registers the search routes. remote wraps the one-shot
// remote search route.
func (h *Handlers) RegisterRoutes(g *echo.Group, remote ...echo.MiddlewareFunc) {
	g.GET("", h.GetState)
	g.PUT("/query", h.UpdateQuery)
	g.DELETE("", h.Clear)
	g.GET("/remote", h.SearchRemote, remote...)
}

// StateResponse is the current query and its results.
type StateResponse struct {
	Query   string  `json:"query"`
	Results Results `json:"results"`
}

// QueryRequest is the body of a query edit.
type QueryRequest struct {
	Query string `json:"query"`
}

// GetState returns the current query and results.
// GET /api/v1/search
func (h *Handlers) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, StateResponse{
		Query:   h.coordinator.Query(),
		Results: h.coordinator.Results(),
	})
}

// UpdateQuery records a query edit. Results follow asynchronously.
// PUT /api/v1/search/query
func (h *Handlers) UpdateQuery(c echo.Context) error {
	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	h.coordinator.UpdateQuery(req.Query)
	return c.JSON(http.StatusAccepted, QueryRequest{Query: req.Query})
}

// Clear resets the query and results.
// DELETE /api/v1/search
func (h *Handlers) Clear(c echo.Context) error {
	h.coordinator.Clear()
	return c.NoContent(http.StatusNoContent)
}

// SearchRemote runs a single remote search without debouncing.
// GET /api/v1/search/remote?query=...&page=...
func (h *Handlers) SearchRemote(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter is required")
	}

	page := 1
	if p := c.QueryParam("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
		page = n
	}

	state := uistate.From(h.remote.Search(c.Request().Context(), query, page))
	return c.JSON(state.HTTPStatus(), state)
}
