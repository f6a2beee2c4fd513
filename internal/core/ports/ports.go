package ports

import (
	"context"

	"cache-manager/internal/store"
)

// CacheService maps incoming requests to business logic
type CacheService interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Stats(ctx context.Context) (Stats, error)
}

// Storage defines the interface for the bounded key/value store
type Storage interface {
	Insert(key, value string) (string, bool, error)
	Get(key string) (string, bool)
	Remove(key string) bool
	Len() int
	Capacity() int
	Stats() store.Stats
}

// Stats describes the state of the cache behind a service
type Stats struct {
	Policy    string `json:"policy"`
	Len       int    `json:"len"`
	Capacity  int    `json:"capacity"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Inserts   uint64 `json:"inserts"`
	Evictions uint64 `json:"evictions"`
}
