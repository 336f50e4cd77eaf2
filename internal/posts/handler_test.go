package posts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arman/volunteer-network-server/internal/httpx"
	"github.com/arman/volunteer-network-server/internal/middleware"
	"github.com/arman/volunteer-network-server/internal/models"
)

// fakeStore is an in-memory Store keyed by a fake 24-char hex id. Inserted
// documents are kept verbatim in raw, with the fields the typed reads need
// mirrored into posts.
type fakeStore struct {
	posts  map[string]models.Post
	raw    map[string]map[string]any
	nextID int
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts: map[string]models.Post{},
		raw:   map[string]map[string]any{},
	}
}

func (f *fakeStore) newID() string {
	f.nextID++
	return fmt.Sprintf("%024x", f.nextID)
}

// seed adds a typed post directly, for tests exercising the read paths.
func (f *fakeStore) seed(post models.Post) string {
	id := f.newID()
	f.posts[id] = post
	return id
}

func validID(id string) bool {
	if len(id) != 24 {
		return false
	}
	for _, c := range id {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return false
		}
	}
	return true
}

func (f *fakeStore) Insert(_ context.Context, doc map[string]any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	id := f.newID()
	f.raw[id] = doc

	var p models.Post
	if s, ok := doc["title"].(string); ok {
		p.Title = s
	}
	if s, ok := doc["deadline"].(string); ok {
		p.Deadline = s
	}
	if s, ok := doc["organizerEmail"].(string); ok {
		p.OrganizerEmail = s
	}
	if n, ok := doc["volunteersNeeded"].(float64); ok {
		p.VolunteersNeeded = int(n)
	}
	f.posts[id] = p
	return id, nil
}

func (f *fakeStore) List(_ context.Context, titleFilter string) ([]models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Post{}
	for _, p := range f.posts {
		if titleFilter == "" || strings.Contains(strings.ToLower(p.Title), strings.ToLower(titleFilter)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) ListUpcoming(_ context.Context, limit int64) ([]models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Post{}
	for _, p := range f.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline < out[j].Deadline })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*models.Post, error) {
	if !validID(id) {
		return nil, httpx.ErrInvalidID
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) ListByOwner(_ context.Context, email string) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range f.posts {
		if p.OrganizerEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id string, fields map[string]any) error {
	if !validID(id) {
		return httpx.ErrInvalidID
	}
	p, ok := f.posts[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if title, ok := fields["title"].(string); ok {
		p.Title = title
	}
	f.posts[id] = p
	return nil
}

func (f *fakeStore) Increment(_ context.Context, id string, deltas map[string]float64) error {
	if !validID(id) {
		return httpx.ErrInvalidID
	}
	p, ok := f.posts[id]
	if !ok {
		return httpx.ErrNotFound
	}
	p.VolunteersNeeded += int(deltas["volunteersNeeded"])
	f.posts[id] = p
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if !validID(id) {
		return httpx.ErrInvalidID
	}
	if _, ok := f.posts[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

// fakeCache records listings and invalidations.
type fakeCache struct {
	posts       []models.Post
	warm        bool
	invalidated int
	getErr      error
}

func (c *fakeCache) Get(context.Context) ([]models.Post, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if !c.warm {
		return nil, errors.New("cache miss")
	}
	return c.posts, nil
}

func (c *fakeCache) Set(_ context.Context, posts []models.Post) error {
	c.posts, c.warm = posts, true
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.warm = false
	c.invalidated++
	return nil
}

func newTestRouter(store Store, cache Cache) *chi.Mux {
	h := NewHandler(store, cache, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/addPost", h.Create)
	r.Get("/volunteerPosts", h.List)
	r.Get("/volunteerNeedsNow", h.NeedsNow)
	r.Get("/volunteerPost/{id}", h.Get)
	r.Get("/my-posts", h.MyPosts)
	r.Put("/volunteerPost/{id}", h.Update)
	r.Patch("/volunteerPost/{id}", h.Patch)
	r.Delete("/volunteerPost/{id}", h.Delete)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndGet(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store, &fakeCache{})

	rec := do(router, http.MethodPost, "/addPost",
		`{"title":"Beach Cleanup","deadline":"2024-03-01","organizerEmail":"a@x.com","volunteersNeeded":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "insertedId")

	var id string
	for k := range store.posts {
		id = k
	}
	rec = do(router, http.MethodGet, "/volunteerPost/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Beach Cleanup")
}

func TestCreatePreservesFreeFormFields(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store, &fakeCache{})

	rec := do(router, http.MethodPost, "/addPost",
		`{"title":"Beach Cleanup","organizerEmail":"a@x.com","volunteersNeeded":5,"urgency":"high","meetingPoint":"Pier 4"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, store.raw, 1)
	var doc map[string]any
	for _, d := range store.raw {
		doc = d
	}
	assert.Equal(t, "high", doc["urgency"])
	assert.Equal(t, "Pier 4", doc["meetingPoint"])
	assert.NotContains(t, doc, "deadline", "absent fields must not be persisted as zero values")
}

func TestGetInvalidAndMissingID(t *testing.T) {
	router := newTestRouter(newFakeStore(), &fakeCache{})

	rec := do(router, http.MethodGet, "/volunteerPost/not-hex", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/volunteerPost/"+strings.Repeat("a", 24), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTitleFilter(t *testing.T) {
	store := newFakeStore()
	store.seed(models.Post{Title: "Beach Cleanup"})
	store.seed(models.Post{Title: "Food Drive"})
	router := newTestRouter(store, &fakeCache{})

	rec := do(router, http.MethodGet, "/volunteerPosts?title=beach", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Beach Cleanup")
	assert.NotContains(t, rec.Body.String(), "Food Drive")

	rec = do(router, http.MethodGet, "/volunteerPosts?title=zzz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestNeedsNowCaching(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 8; i++ {
		store.seed(models.Post{
			Title:    fmt.Sprintf("post-%d", i),
			Deadline: fmt.Sprintf("2024-03-0%d", i+1),
		})
	}
	cache := &fakeCache{}
	router := newTestRouter(store, cache)

	rec := do(router, http.MethodGet, "/volunteerNeedsNow", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, cache.warm)
	assert.Len(t, cache.posts, 6)

	// Second read is served from the cache even if the store errors.
	store.err = errors.New("store down")
	rec = do(router, http.MethodGet, "/volunteerNeedsNow", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMyPostsUsesContextEmail(t *testing.T) {
	store := newFakeStore()
	store.seed(models.Post{Title: "Mine", OrganizerEmail: "a@x.com"})
	store.seed(models.Post{Title: "Theirs", OrganizerEmail: "b@y.com"})
	router := newTestRouter(store, &fakeCache{})

	req := httptest.NewRequest(http.MethodGet, "/my-posts", nil)
	req = req.WithContext(middleware.WithEmail(req.Context(), "a@x.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mine")
	assert.NotContains(t, rec.Body.String(), "Theirs")
}

func TestMyPostsWithoutIdentity(t *testing.T) {
	router := newTestRouter(newFakeStore(), &fakeCache{})

	rec := do(router, http.MethodGet, "/my-posts", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is required")
}

func TestUpdateAndDelete(t *testing.T) {
	store := newFakeStore()
	id := store.seed(models.Post{Title: "Old"})
	cache := &fakeCache{warm: true}
	router := newTestRouter(store, cache)

	rec := do(router, http.MethodPut, "/volunteerPost/"+id, `{"title":"New"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New", store.posts[id].Title)
	assert.Positive(t, cache.invalidated)

	rec = do(router, http.MethodDelete, "/volunteerPost/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodDelete, "/volunteerPost/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.posts)
}

func TestPatchTaggedVariants(t *testing.T) {
	store := newFakeStore()
	id := store.seed(models.Post{Title: "Old", VolunteersNeeded: 5})
	router := newTestRouter(store, &fakeCache{})

	rec := do(router, http.MethodPatch, "/volunteerPost/"+id, `{"set":{"title":"New"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New", store.posts[id].Title)

	rec = do(router, http.MethodPatch, "/volunteerPost/"+id, `{"increment":{"volunteersNeeded":-2}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, store.posts[id].VolunteersNeeded)
}

func TestPatchRejectsAmbiguousBody(t *testing.T) {
	store := newFakeStore()
	id := store.seed(models.Post{Title: "Old"})
	router := newTestRouter(store, &fakeCache{})

	for name, body := range map[string]string{
		"neither": `{}`,
		"both":    `{"set":{"title":"x"},"increment":{"volunteersNeeded":1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(router, http.MethodPatch, "/volunteerPost/"+id, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestStoreFailureIs500WithRawError(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection reset")
	router := newTestRouter(store, &fakeCache{})

	rec := do(router, http.MethodGet, "/volunteerPosts", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection reset")
}
