package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listCacheKey = "movies:list"
	listCacheTTL = 30 * time.Second
)

// MovieListCache caches the serialized public movie listing under a single
// key with a short TTL. It backs service.ListCache; a miss returns (nil, nil).
type MovieListCache struct {
	client *redis.Client
}

func NewMovieListCache(client *redis.Client) *MovieListCache {
	return &MovieListCache{client: client}
}

func (c *MovieListCache) Get(ctx context.Context) ([]byte, error) {
	payload, err := c.client.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return payload, nil
}

func (c *MovieListCache) Set(ctx context.Context, payload []byte) error {
	return c.client.Set(ctx, listCacheKey, payload, listCacheTTL).Err()
}

// Invalidate drops the cached listing. Called after every movie write so the
// public list never serves a stale copy longer than one round trip.
func (c *MovieListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listCacheKey).Err()
}
