package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss: key does not exist")

// Cache is the subset of key/value operations the repositories rely on.
type Cache interface {
	// Set stores value, JSON encoded, for expiration.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error

	// Get decodes the stored value into target, a pointer. Returns ErrCacheMiss
	// when the key is absent or expired.
	Get(ctx context.Context, key string, target any) error

	Del(ctx context.Context, keys ...string) error

	Exists(ctx context.Context, key string) (bool, error)
}

func ShareLinkTokenKey(token string) string {
	return "sharelink:token:" + token
}
