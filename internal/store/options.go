package store

import "log/slog"

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithOverwrite makes Insert replace the value of a key that is already
// cached. The replacement counts as an access for the policy.
func WithOverwrite[K comparable, V any]() Option[K, V] {
	return func(c *Cache[K, V]) { c.overwrite = true }
}

// WithOnEvict registers fn to be called for every entry the policy evicts.
// It is not called for Remove or Purge.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *Cache[K, V]) { c.onEvict = fn }
}

// WithMetrics reports hits, misses, evictions and size to m.
func WithMetrics[K comparable, V any](m Metrics) Option[K, V] {
	return func(c *Cache[K, V]) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithLogger sets the logger used for eviction diagnostics.
func WithLogger[K comparable, V any](l *slog.Logger) Option[K, V] {
	return func(c *Cache[K, V]) {
		if l != nil {
			c.logger = l
		}
	}
}
