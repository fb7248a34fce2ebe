// Package cache is a read-through key-value cache for the post endpoints.
// Values are stored as JSON so the memory and redis backends behave the same.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by Get when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the backend contract. Delete is idempotent: removing an absent
// key is not an error. Concurrent Remember calls on a cold key may each run
// the producer and overwrite each other; the database stays the source of
// truth, so last-write-wins is fine.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Remember returns the cached value for key, or runs producer, stores the
// result with the given ttl and returns it. Producer errors propagate
// unchanged and nothing is stored. A failed Set does not discard the
// produced value.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, producer func() (T, error)) (T, error) {
	var value T

	if data, err := c.Get(ctx, key); err == nil {
		if err := json.Unmarshal(data, &value); err == nil {
			return value, nil
		}
		// Undecodable entry, fall through and repopulate.
	}

	value, err := producer()
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		_ = c.Set(ctx, key, data, ttl)
	}

	return value, nil
}

// Cache keys for the post endpoints. The listing key is coarse because any
// post mutation can change its membership or ordering; per-post keys keep
// unrelated mutations from evicting each other. Search keys use the raw
// query string and are never invalidated, only expired.
const PostsKey = "posts"

func PostKey(id uint) string {
	return fmt.Sprintf("post_%d", id)
}

func SearchKey(query string) string {
	return fmt.Sprintf("search_%s", query)
}
