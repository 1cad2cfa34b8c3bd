package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/marquee/marquee/internal/uistate"
)

// Handlers provides HTTP handlers for collections and movie details.
type Handlers struct {
	service     *Service
	collections *Collections
}

// NewHandlers creates new catalog handlers.
func NewHandlers(service *Service, collections *Collections) *Handlers {
	return &Handlers{
		service:     service,
		collections: collections,
	}
}

// RegisterRoutes registers the catalog routes. remote wraps the routes that
// call TMDB on demand.
func (h *Handlers) RegisterRoutes(g *echo.Group, remote ...echo.MiddlewareFunc) {
	g.GET("/collections", h.ListCollections)
	g.GET("/collections/:kind", h.GetCollection)
	g.POST("/collections/retry", h.RetryCollections, remote...)
	g.POST("/collections/:kind/retry", h.RetryCollection, remote...)

	g.GET("/movies/:id", h.GetMovie, remote...)
	g.GET("/movies/:id/credits", h.GetCredits, remote...)
	g.GET("/movies/:id/reviews", h.GetReviews, remote...)
	g.GET("/movies/:id/videos", h.GetVideos, remote...)
}

// ListCollections returns the envelope of every collection.
// GET /api/v1/collections
func (h *Handlers) ListCollections(c echo.Context) error {
	return c.JSON(http.StatusOK, h.collections.States())
}

// GetCollection returns the envelope of one collection.
// GET /api/v1/collections/:kind
func (h *Handlers) GetCollection(c echo.Context) error {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	state, _ := h.collections.State(kind)
	return c.JSON(state.HTTPStatus(), state)
}

// RetryCollections reloads every collection and returns the resulting envelopes.
// POST /api/v1/collections/retry
func (h *Handlers) RetryCollections(c echo.Context) error {
	// Collection state is shared, so a client going away must not cancel the load.
	ctx := context.WithoutCancel(c.Request().Context())
	_ = h.collections.Retry(ctx)
	return c.JSON(http.StatusOK, h.collections.States())
}

// RetryCollection reloads one collection.
// POST /api/v1/collections/:kind/retry
func (h *Handlers) RetryCollection(c echo.Context) error {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	_ = h.collections.LoadKind(context.WithoutCancel(c.Request().Context()), kind)
	state, _ := h.collections.State(kind)
	return c.JSON(state.HTTPStatus(), state)
}

// GetMovie loads details, credits, reviews and videos of a movie.
// GET /api/v1/movies/:id
func (h *Handlers) GetMovie(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	details := NewDetails(h.service, id)
	details.Load(c.Request().Context())

	view := details.View()
	return c.JSON(view.Movie.HTTPStatus(), view)
}

// GetCredits returns the cast of a movie.
// GET /api/v1/movies/:id/credits
func (h *Handlers) GetCredits(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	state := uistate.From(h.service.Credits(c.Request().Context(), id))
	return c.JSON(state.HTTPStatus(), state)
}

// GetReviews returns one page of reviews.
// GET /api/v1/movies/:id/reviews?page=
func (h *Handlers) GetReviews(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	page := 1
	if p := c.QueryParam("page"); p != "" {
		if page, err = strconv.Atoi(p); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
	}

	state := uistate.From(h.service.Reviews(c.Request().Context(), id, page))
	return c.JSON(state.HTTPStatus(), state)
}

// GetVideos returns the ranked videos of a movie.
// GET /api/v1/movies/:id/videos
func (h *Handlers) GetVideos(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	state := uistate.From(h.service.Videos(c.Request().Context(), id))
	return c.JSON(state.HTTPStatus(), state)
}

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
