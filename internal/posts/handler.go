package posts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arman/volunteer-network-server/internal/httpx"
	"github.com/arman/volunteer-network-server/internal/middleware"
	"github.com/arman/volunteer-network-server/internal/models"
)

// needsNowLimit caps the homepage "needs now" listing.
const needsNowLimit = 6

// Store defines the post persistence operations the handlers need.
type Store interface {
	Insert(ctx context.Context, doc map[string]any) (string, error)
	List(ctx context.Context, titleFilter string) ([]models.Post, error)
	ListUpcoming(ctx context.Context, limit int64) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	ListByOwner(ctx context.Context, email string) ([]models.Post, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Increment(ctx context.Context, id string, deltas map[string]float64) error
	Delete(ctx context.Context, id string) error
}

// Cache is the hot-listing cache. All methods are best-effort: a failing
// cache degrades to store reads, never to request failures.
type Cache interface {
	Get(ctx context.Context) ([]models.Post, error)
	Set(ctx context.Context, posts []models.Post) error
	Invalidate(ctx context.Context) error
}

// Handler holds the volunteer post HTTP handlers.
type Handler struct {
	store  Store
	cache  Cache
	logger *zap.Logger
}

func NewHandler(store Store, cache Cache, logger *zap.Logger) *Handler {
	return &Handler{store: store, cache: cache, logger: logger}
}

// Create handles POST /addPost. The document is inserted verbatim; the
// creator owns its shape, including any free-form fields.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil || doc == nil {
		httpx.Error(w, httpx.ErrBadRequest, "Invalid request body")
		return
	}

	id, err := h.store.Insert(r.Context(), doc)
	if err != nil {
		httpx.Error(w, err, "Failed to add post")
		return
	}

	h.invalidate(r.Context())
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"acknowledged": true,
		"insertedId":   id,
	})
}

// List handles GET /volunteerPosts with an optional case-insensitive title
// substring filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.List(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		httpx.Error(w, err, "Failed to fetch posts")
		return
	}
	httpx.JSON(w, http.StatusOK, posts)
}

// NeedsNow handles GET /volunteerNeedsNow: up to six posts by ascending
// deadline, served from the cache when warm.
func (h *Handler) NeedsNow(w http.ResponseWriter, r *http.Request) {
	if posts, err := h.cache.Get(r.Context()); err == nil {
		httpx.JSON(w, http.StatusOK, posts)
		return
	}

	posts, err := h.store.ListUpcoming(r.Context(), needsNowLimit)
	if err != nil {
		httpx.Error(w, err, "Failed to fetch posts")
		return
	}
	if err := h.cache.Set(r.Context(), posts); err != nil {
		h.logger.Warn("listing cache set failed", zap.Error(err))
	}
	httpx.JSON(w, http.StatusOK, posts)
}

// Get handles GET /volunteerPost/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		httpx.JSON(w, http.StatusOK, post)
	case errors.Is(err, httpx.ErrInvalidID):
		httpx.Error(w, err, "Invalid post id")
	case errors.Is(err, httpx.ErrNotFound):
		httpx.Error(w, err, "Post not found")
	default:
		httpx.Error(w, err, "Failed to fetch post")
	}
}

// MyPosts handles GET /my-posts. The organizer email comes from the verified
// token only, never from a query parameter.
func (h *Handler) MyPosts(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFrom(r.Context())
	if !ok || email == "" {
		httpx.Error(w, httpx.ErrBadRequest, "Email is required")
		return
	}

	posts, err := h.store.ListByOwner(r.Context(), email)
	if err != nil {
		httpx.Error(w, err, "Failed to fetch posts")
		return
	}
	httpx.JSON(w, http.StatusOK, posts)
}

// Update handles PUT /volunteerPost/{id}: overwrite of the given fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil || len(fields) == 0 {
		httpx.Error(w, httpx.ErrBadRequest, "Invalid request body")
		return
	}
	delete(fields, "_id")

	h.applyUpdate(w, r, h.store.Update(r.Context(), chi.URLParam(r, "id"), fields))
}

// Patch handles PATCH /volunteerPost/{id}. The body carries exactly one of
// "set" or "increment"; the caller states the intent.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch models.PatchPost
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.Error(w, httpx.ErrBadRequest, "Invalid request body")
		return
	}
	if (len(patch.Set) == 0) == (len(patch.Increment) == 0) {
		httpx.Error(w, httpx.ErrBadRequest, "Exactly one of set or increment is required")
		return
	}

	id := chi.URLParam(r, "id")
	if len(patch.Increment) > 0 {
		h.applyUpdate(w, r, h.store.Increment(r.Context(), id, patch.Increment))
		return
	}
	delete(patch.Set, "_id")
	h.applyUpdate(w, r, h.store.Update(r.Context(), id, patch.Set))
}

// Delete handles DELETE /volunteerPost/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		h.invalidate(r.Context())
		httpx.Message(w, http.StatusOK, "Post deleted successfully")
	case errors.Is(err, httpx.ErrInvalidID):
		httpx.Error(w, err, "Invalid post id")
	case errors.Is(err, httpx.ErrNotFound):
		httpx.Error(w, err, "Post not found")
	default:
		httpx.Error(w, err, "Failed to delete post")
	}
}

func (h *Handler) applyUpdate(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		h.invalidate(r.Context())
		httpx.Message(w, http.StatusOK, "Post updated successfully")
	case errors.Is(err, httpx.ErrInvalidID):
		httpx.Error(w, err, "Invalid post id")
	case errors.Is(err, httpx.ErrNotFound):
		httpx.Error(w, err, "Post not found")
	default:
		httpx.Error(w, err, "Failed to update post")
	}
}

func (h *Handler) invalidate(ctx context.Context) {
	if err := h.cache.Invalidate(ctx); err != nil {
		h.logger.Warn("listing cache invalidate failed", zap.Error(err))
	}
}
