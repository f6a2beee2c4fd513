package store

import (
	"errors"
	"fmt"
	"log/slog"

	"cache-manager/internal/store/policy"
)

var (
	// ErrInvalidCapacity is returned by New for a capacity below one.
	ErrInvalidCapacity = errors.New("cache capacity must be positive")

	// ErrNilPolicy is returned by New when no eviction policy is given.
	ErrNilPolicy = errors.New("cache eviction policy is nil")

	// ErrCapacityInconsistency is returned by Insert when the cache is full but
	// the policy has no victim to offer. It means cache and policy disagree
	// about which keys are resident.
	ErrCapacityInconsistency = errors.New("cache is full but policy has no victim")
)

// Cache is a capacity-bounded key/value store that delegates every eviction
// decision to its policy.
//
// A Cache is not safe for concurrent use; wrap it in Locked when several
// goroutines share it.
type Cache[K comparable, V any] struct {
	items    map[K]V
	capacity int
	policy   policy.EvictionPolicy[K]

	overwrite bool
	onEvict   func(K, V)
	metrics   Metrics
	logger    *slog.Logger

	stats Stats
}

// New creates a cache holding at most capacity entries.
// The policy must be empty and becomes owned by the cache.
func New[K comparable, V any](capacity int, p policy.EvictionPolicy[K], opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if p == nil {
		return nil, ErrNilPolicy
	}

	c := &Cache[K, V]{
		items:    make(map[K]V, capacity),
		capacity: capacity,
		policy:   p,
		metrics:  NoopMetrics{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNew is like New but panics on a configuration error.
func MustNew[K comparable, V any](capacity int, p policy.EvictionPolicy[K], opts ...Option[K, V]) *Cache[K, V] {
	c, err := New(capacity, p, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Insert stores value under key.
//
// If key is already present the stored value is returned with ok set and,
// unless the cache was built WithOverwrite, nothing changes. With overwrite the
// value is replaced, the old one returned, and the key counts as accessed.
// Only a write that stores a value is counted in Stats().Inserts.
//
// Otherwise, when the cache is full, the policy is asked for victims until
// there is room. The value of the evicted entry is returned with ok set.
// If the policy runs out of victims while the cache is still full the insert
// fails with ErrCapacityInconsistency and the cache is left untouched.
func (c *Cache[K, V]) Insert(key K, value V) (displaced V, ok bool, err error) {
	if existing, found := c.items[key]; found {
		if c.overwrite {
			c.items[key] = value
			c.policy.OnAccess(key)
			c.stats.Inserts++
			c.metrics.Size(len(c.items))
		}
		return existing, true, nil
	}

	for len(c.items) >= c.capacity {
		victim, found := c.policy.Evict()
		if !found {
			c.logger.Error("eviction policy has no victim for a full cache",
				slog.Int("len", len(c.items)),
				slog.Int("capacity", c.capacity),
			)
			var zero V
			return zero, false, fmt.Errorf("insert %v: %w", key, ErrCapacityInconsistency)
		}
		v, resident := c.items[victim]
		if !resident {
			c.logger.Warn("eviction policy returned a key that is not cached",
				slog.Any("key", victim),
			)
			continue
		}
		delete(c.items, victim)
		c.evicted(victim, v)
		displaced, ok = v, true
	}

	c.policy.OnInsert(key)
	c.items[key] = value
	c.stats.Inserts++
	c.metrics.Size(len(c.items))
	return displaced, ok, nil
}

// Get returns the value stored under key and marks it as accessed.
// A miss is not reported to the policy.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		c.metrics.Miss()
		return v, false
	}
	c.policy.OnAccess(key)
	c.stats.Hits++
	c.metrics.Hit()
	return v, true
}

// Peek returns the value stored under key without touching the policy.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	v, ok := c.items[key]
	return v, ok
}

// Contains reports whether key is cached, without touching the policy.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Remove deletes key and tells the policy to forget it.
// Returns false if key was not cached.
func (c *Cache[K, V]) Remove(key K) bool {
	if _, ok := c.items[key]; !ok {
		return false
	}
	delete(c.items, key)
	c.policy.OnRemove(key)
	c.metrics.Size(len(c.items))
	return true
}

// Purge removes every entry. Purged entries are not reported as evictions.
func (c *Cache[K, V]) Purge() {
	for k := range c.items {
		c.policy.OnRemove(k)
	}
	clear(c.items)
	c.metrics.Size(0)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int { return len(c.items) }

// Capacity returns the maximum number of entries.
func (c *Cache[K, V]) Capacity() int { return c.capacity }

// Snapshot returns a copy of the current entries.
func (c *Cache[K, V]) Snapshot() map[K]V {
	out := make(map[K]V, len(c.items))
	for k, v := range c.items {
		out[k] = v
	}
	return out
}

// Keys returns the cached keys in no particular order.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}

// Stats returns the counters accumulated since the cache was created.
func (c *Cache[K, V]) Stats() Stats { return c.stats }

func (c *Cache[K, V]) evicted(key K, value V) {
	c.stats.Evictions++
	c.metrics.Evict()
	c.logger.Debug("evicted", slog.Any("key", key))
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}
