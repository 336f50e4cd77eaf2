package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arman/volunteer-network-server/internal/models"
)

func TestListingCacheMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewListingCache(rdb)

	mock.ExpectGet(needsNowKey).RedisNil()

	_, err := cache.Get(context.Background())

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingCacheRoundTrip(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewListingCache(rdb)

	posts := []models.Post{
		{Title: "Beach Cleanup", Deadline: "2024-03-01", VolunteersNeeded: 5},
		{Title: "Food Drive", Deadline: "2024-03-08", VolunteersNeeded: 2},
	}
	raw, err := json.Marshal(posts)
	require.NoError(t, err)

	mock.ExpectSet(needsNowKey, raw, 30*time.Second).SetVal("OK")
	mock.ExpectGet(needsNowKey).SetVal(string(raw))

	require.NoError(t, cache.Set(context.Background(), posts))

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, posts, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingCacheInvalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewListingCache(rdb)

	mock.ExpectDel(needsNowKey).SetVal(1)

	assert.NoError(t, cache.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
