package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arman/volunteer-network-server/internal/models"
)

const (
	needsNowKey = "cache:needs_now"
	needsNowTTL = 30 * time.Second
)

// ErrCacheMiss reports that no cached listing is available.
var ErrCacheMiss = errors.New("cache miss")

// ListingCache keeps the "needs now" homepage listing warm in Redis. Every
// post write invalidates it.
type ListingCache struct {
	rdb *redis.Client
}

func NewListingCache(rdb *redis.Client) *ListingCache {
	return &ListingCache{rdb: rdb}
}

func (c *ListingCache) Get(ctx context.Context) ([]models.Post, error) {
	raw, err := c.rdb.Get(ctx, needsNowKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var posts []models.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return posts, nil
}

func (c *ListingCache) Set(ctx context.Context, posts []models.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, needsNowKey, raw, needsNowTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, needsNowKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
