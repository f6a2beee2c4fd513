package store

import "sync"

// Locked guards a Cache with a single mutex so storage and policy are always
// observed together. Get takes the exclusive lock too, because a read updates
// the policy.
type Locked[K comparable, V any] struct {
	mu sync.Mutex
	c  *Cache[K, V]
}

// NewLocked wraps c. The caller must not use c directly afterwards.
func NewLocked[K comparable, V any](c *Cache[K, V]) *Locked[K, V] {
	return &Locked[K, V]{c: c}
}

func (l *Locked[K, V]) Insert(key K, value V) (V, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Insert(key, value)
}

func (l *Locked[K, V]) Get(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Get(key)
}

func (l *Locked[K, V]) Peek(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Peek(key)
}

func (l *Locked[K, V]) Contains(key K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Contains(key)
}

func (l *Locked[K, V]) Remove(key K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Remove(key)
}

func (l *Locked[K, V]) Purge() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.Purge()
}

func (l *Locked[K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Len()
}

// Capacity is fixed at construction and needs no lock.
func (l *Locked[K, V]) Capacity() int { return l.c.Capacity() }

func (l *Locked[K, V]) Snapshot() map[K]V {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Snapshot()
}

func (l *Locked[K, V]) Keys() []K {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Keys()
}

func (l *Locked[K, V]) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Stats()
}
