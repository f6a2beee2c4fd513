package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cache-manager/internal/core/ports"
	"cache-manager/internal/observability"
	"cache-manager/internal/store"
)

var (
	// ErrNotFound is returned when a key is not cached.
	ErrNotFound = errors.New("key not found")

	// ErrEmptyKey is returned for requests without a key.
	ErrEmptyKey = errors.New("key is empty")
)

// ensure implementation
var _ ports.CacheService = (*ServiceImpl)(nil)

type ServiceImpl struct {
	store   ports.Storage
	metrics *observability.Metrics
	logger  *slog.Logger
	policy  string
}

// Option configures a ServiceImpl.
type Option func(*ServiceImpl)

// WithMetrics records every operation in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *ServiceImpl) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *ServiceImpl) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPolicyName sets the policy name reported by Stats.
func WithPolicyName(name string) Option {
	return func(s *ServiceImpl) { s.policy = name }
}

func New(store ports.Storage, opts ...Option) *ServiceImpl {
	s := &ServiceImpl{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ServiceImpl) Get(ctx context.Context, key string) (string, error) {
	started := time.Now()
	if key == "" {
		s.observe("get", "error", started)
		return "", ErrEmptyKey
	}

	val, found := s.store.Get(key)
	if !found {
		s.observe("get", "miss", started)
		return "", fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	s.observe("get", "hit", started)
	return val, nil
}

func (s *ServiceImpl) Set(ctx context.Context, key, value string) error {
	started := time.Now()
	if key == "" {
		s.observe("set", "error", started)
		return ErrEmptyKey
	}

	if _, _, err := s.store.Insert(key, value); err != nil {
		s.observe("set", "error", started)
		s.logger.ErrorContext(ctx, "cache insert rejected",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return fmt.Errorf("set %q: %w", key, err)
	}
	s.observe("set", "success", started)
	return nil
}

func (s *ServiceImpl) Delete(ctx context.Context, key string) error {
	started := time.Now()
	if key == "" {
		s.observe("delete", "error", started)
		return ErrEmptyKey
	}
	if !s.store.Remove(key) {
		s.observe("delete", "miss", started)
		return fmt.Errorf("delete %q: %w", key, ErrNotFound)
	}
	s.observe("delete", "success", started)
	return nil
}

func (s *ServiceImpl) Stats(ctx context.Context) (ports.Stats, error) {
	st := s.store.Stats()
	return ports.Stats{
		Policy:    s.policy,
		Len:       s.store.Len(),
		Capacity:  s.store.Capacity(),
		Hits:      st.Hits,
		Misses:    st.Misses,
		Inserts:   st.Inserts,
		Evictions: st.Evictions,
	}, nil
}

func (s *ServiceImpl) observe(op, status string, started time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(op, status, started)
	}
}

var _ ports.Storage = (*store.Locked[string, string])(nil)
