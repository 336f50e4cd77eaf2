package events

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/arman/volunteer-network-server/internal/httpx"
	"github.com/arman/volunteer-network-server/internal/models"
)

// Store serves the read-only event catalog.
type Store interface {
	List(ctx context.Context) ([]models.Event, error)
	GetByNumericID(ctx context.Context, id int) (*models.Event, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List handles GET /events.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.List(r.Context())
	if err != nil {
		httpx.Error(w, err, "Failed to fetch events")
		return
	}
	httpx.JSON(w, http.StatusOK, events)
}

// Get handles GET /events/{id}; the id is the numeric catalog id, not a
// store-generated identifier.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, httpx.ErrBadRequest, "Event id must be numeric")
		return
	}

	event, err := h.store.GetByNumericID(r.Context(), id)
	switch {
	case err == nil:
		httpx.JSON(w, http.StatusOK, event)
	case errors.Is(err, httpx.ErrNotFound):
		httpx.Error(w, err, "Event not found")
	default:
		httpx.Error(w, err, "Error fetching event")
	}
}
