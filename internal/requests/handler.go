package requests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/arman/volunteer-network-server/internal/httpx"
)

// Cache mirrors posts.Cache; a successful submission changes a post counter,
// so the hot listing must be dropped.
type Cache interface {
	Invalidate(ctx context.Context) error
}

// Handler holds the volunteer request HTTP handlers.
type Handler struct {
	service  *Service
	store    Store
	cache    Cache
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(service *Service, store Store, cache Cache, logger *zap.Logger) *Handler {
	return &Handler{
		service:  service,
		store:    store,
		cache:    cache,
		validate: validator.New(),
		logger:   logger,
	}
}

// Submit handles POST /requestVolunteer/{id}. The body is applicant-shaped
// and passes through verbatim; only volunteerEmail is required since it
// feeds the duplicate guard.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil || doc == nil {
		httpx.Error(w, httpx.ErrBadRequest, "Invalid request body")
		return
	}
	email, _ := doc["volunteerEmail"].(string)
	if err := h.validate.Var(email, "required,email"); err != nil {
		httpx.Error(w, httpx.ErrBadRequest, "A valid volunteerEmail is required")
		return
	}

	err := h.service.Submit(r.Context(), chi.URLParam(r, "id"), doc)
	switch {
	case err == nil:
		if cacheErr := h.cache.Invalidate(r.Context()); cacheErr != nil {
			h.logger.Warn("listing cache invalidate failed", zap.Error(cacheErr))
		}
		httpx.Message(w, http.StatusOK, "Request submitted successfully!")
	case errors.Is(err, httpx.ErrDuplicateRequest):
		httpx.Error(w, err, "You have already submitted a request for this post!")
	case errors.Is(err, httpx.ErrCapacityExhausted):
		httpx.Error(w, err, "This post has no volunteer slots left")
	case errors.Is(err, httpx.ErrNotFound), errors.Is(err, httpx.ErrInvalidID):
		httpx.Error(w, httpx.ErrNotFound, "Post not found")
	default:
		httpx.Error(w, err, "Error submitting request")
	}
}

// ListByOwner handles GET /requests-by-owner?email=.
func (h *Handler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		httpx.Error(w, httpx.ErrBadRequest, "Organizer email is required")
		return
	}

	reqs, err := h.store.ListByOwner(r.Context(), email)
	if err != nil {
		httpx.Error(w, err, "Failed to fetch requests")
		return
	}
	httpx.JSON(w, http.StatusOK, reqs)
}

// Delete handles DELETE /my-volunteer-requests/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		httpx.Message(w, http.StatusOK, "Request deleted successfully")
	case errors.Is(err, httpx.ErrInvalidID):
		httpx.Error(w, err, "Invalid request id")
	case errors.Is(err, httpx.ErrNotFound):
		httpx.Error(w, err, "Request not found")
	default:
		httpx.Error(w, err, "Failed to delete request")
	}
}
