package policy

import (
	"errors"
	"fmt"
	"strings"
)

// EvictionPolicy defines the interface for eviction algorithms.
// Implementations allow the cache to decouple capacity management from storage logic.
// A policy only tracks keys; it never sees values or the capacity bound.
//
// Policies are not safe for concurrent use. The owning cache serializes calls.
type EvictionPolicy[K comparable] interface {
	// OnInsert records that key entered the cache.
	// Calling it again for a key that is already tracked must not duplicate it.
	OnInsert(key K)

	// OnAccess is called when a key is read.
	// This allows policies (like LRU/LFU) to update their internal state.
	OnAccess(key K)

	// OnRemove is called when a key is deleted from the cache by anything
	// other than Evict. Unknown keys are ignored.
	OnRemove(key K)

	// Evict removes the victim from internal tracking and returns it.
	// Returns false if nothing is tracked.
	Evict() (K, bool)

	// Len returns the number of tracked keys.
	Len() int
}

// Kind names one of the built-in policies.
type Kind string

const (
	FIFO   Kind = "fifo"
	LRU    Kind = "lru"
	LFU    Kind = "lfu"
	Random Kind = "random"
)

// ErrUnknownKind is returned for a policy name that is not built in.
var ErrUnknownKind = errors.New("unknown eviction policy")

// Kinds lists the built-in policies.
func Kinds() []Kind { return []Kind{FIFO, LRU, LFU, Random} }

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case FIFO, LRU, LFU, Random:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// UnmarshalText accepts any name ParseKind accepts and stores its canonical form.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// New creates an empty policy of the given kind.
func New[K comparable](kind Kind) (EvictionPolicy[K], error) {
	switch kind {
	case FIFO:
		return NewFIFO[K](), nil
	case LRU:
		return NewLRU[K](), nil
	case LFU:
		return NewLFU[K](), nil
	case Random:
		return NewRandom[K](), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}
