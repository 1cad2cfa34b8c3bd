package bookmarks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/marquee/marquee/internal/uistate"
)

// Handlers provides HTTP handlers for bookmarks.
type Handlers struct {
	store       *Store
	coordinator *Coordinator
}

// NewHandlers creates new bookmark handlers.
func NewHandlers(store *Store, coordinator *Coordinator) *Handlers {
	return &Handlers{
		store:       store,
		coordinator: coordinator,
	}
}

// RegisterRoutes registers the bookmark routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Add)
	g.POST("/toggle", h.Toggle)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Remove)
}

// ToggleRequest is the body of a toggle call.
type ToggleRequest struct {
	Movie      BookmarkedMovie `json:"movie"`
	Bookmarked bool            `json:"bookmarked"`
}

// StatusResponse reports the bookmark state of one movie.
type StatusResponse struct {
	ID         int              `json:"id"`
	Bookmarked bool             `json:"bookmarked"`
	Movie      *BookmarkedMovie `json:"movie,omitempty"`
}

// List returns the bookmarks, optionally fuzzy-filtered by title.
// GET /api/v1/bookmarks?q=
func (h *Handlers) List(c echo.Context) error {
	movies, err := h.store.List(c.Request().Context())
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusOK, uistate.Success(Filter(movies, c.QueryParam("q"))))
}

// Add bookmarks a movie.
// POST /api/v1/bookmarks
func (h *Handlers) Add(c echo.Context) error {
	var movie BookmarkedMovie
	if err := c.Bind(&movie); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if movie.ID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidMovie.Error())
	}

	if err := h.coordinator.Toggle(c.Request().Context(), movie, false); err != nil {
		return failure(c, err)
	}
	return h.status(c, movie.ID, http.StatusCreated)
}

// Toggle flips a bookmark using the caller's current flag.
// POST /api/v1/bookmarks/toggle
func (h *Handlers) Toggle(c echo.Context) error {
	var req ToggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Movie.ID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidMovie.Error())
	}

	if err := h.coordinator.Toggle(c.Request().Context(), req.Movie, req.Bookmarked); err != nil {
		return failure(c, err)
	}
	return h.status(c, req.Movie.ID, http.StatusOK)
}

// Get reports whether a movie is bookmarked.
// GET /api/v1/bookmarks/:id
func (h *Handlers) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return h.status(c, id, http.StatusOK)
}

// Remove deletes a bookmark. Unknown ids succeed.
// DELETE /api/v1/bookmarks/:id
func (h *Handlers) Remove(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.store.RemoveByID(c.Request().Context(), id); err != nil {
		return failure(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handlers) status(c echo.Context, id, code int) error {
	movie, err := h.store.Get(c.Request().Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		return c.JSON(code, StatusResponse{ID: id})
	case err != nil:
		return failure(c, err)
	}
	return c.JSON(code, StatusResponse{ID: id, Bookmarked: true, Movie: &movie})
}

func failure(c echo.Context, err error) error {
	state := uistate.Failure[any](err)
	return c.JSON(state.HTTPStatus(), state)
}
