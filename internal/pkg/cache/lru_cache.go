package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type lruEntry struct {
	data      []byte
	expiresAt time.Time // zero: bounded only by the cache-wide TTL
}

// LRUCache is an in-process Cache used when Redis is not configured. Entries
// are evicted by size, by the cache-wide ttl, or by the per-entry expiration.
type LRUCache struct {
	lru *expirable.LRU[string, lruEntry]
	now func() time.Time
}

func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	if size <= 0 {
		size = 1024
	}
	return &LRUCache{
		lru: expirable.NewLRU[string, lruEntry](size, nil, ttl),
		now: time.Now,
	}
}

func (l *LRUCache) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	entry := lruEntry{data: data}
	if expiration > 0 {
		entry.expiresAt = l.now().Add(expiration)
	}
	l.lru.Add(key, entry)
	return nil
}

func (l *LRUCache) Get(_ context.Context, key string, target any) error {
	entry, ok := l.lookup(key)
	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(entry.data, target); err != nil {
		return fmt.Errorf("unmarshal cache value: %w", err)
	}
	return nil
}

func (l *LRUCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		l.lru.Remove(k)
	}
	return nil
}

func (l *LRUCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := l.lookup(key)
	return ok, nil
}

func (l *LRUCache) lookup(key string) (lruEntry, bool) {
	entry, ok := l.lru.Get(key)
	if !ok {
		return lruEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !l.now().Before(entry.expiresAt) {
		l.lru.Remove(key)
		return lruEntry{}, false
	}
	return entry, true
}
