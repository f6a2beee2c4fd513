package policy

import (
	"math/rand"
	"time"
)

// RandomPolicy implements a random eviction strategy.
type RandomPolicy[K comparable] struct {
	items []K
	index map[K]int
	rnd   *rand.Rand
}

// NewRandom creates a new Random policy instance with a time-based seed.
func NewRandom[K comparable]() *RandomPolicy[K] {
	return NewRandomWithSource[K](rand.NewSource(time.Now().UnixNano()))
}

// NewRandomWithSource creates a Random policy drawing from src.
// A fixed source makes the victim sequence reproducible.
func NewRandomWithSource[K comparable](src rand.Source) *RandomPolicy[K] {
	return &RandomPolicy[K]{
		items: make([]K, 0),
		index: make(map[K]int),
		rnd:   rand.New(src),
	}
}

// OnAccess acts as a no-op for the Random policy.
// Access patterns do not influence eviction probability in this strategy.
func (p *RandomPolicy[K]) OnAccess(key K) {
	// No-op for Random
}

// OnInsert adds a new key to the candidate pool.
func (p *RandomPolicy[K]) OnInsert(key K) {
	if _, ok := p.index[key]; ok {
		return
	}
	p.index[key] = len(p.items)
	p.items = append(p.items, key)
}

// OnRemove removes a key from the candidate pool.
// It performs a swap-remove to delete it without preserving order.
func (p *RandomPolicy[K]) OnRemove(key K) {
	i, ok := p.index[key]
	if !ok {
		return
	}
	p.removeAt(i)
}

// Evict chooses a random key from the current items and forgets it.
// Returns false if the policy has no items.
func (p *RandomPolicy[K]) Evict() (K, bool) {
	if len(p.items) == 0 {
		var zero K
		return zero, false
	}
	i := p.rnd.Intn(len(p.items))
	key := p.items[i]
	p.removeAt(i)
	return key, true
}

func (p *RandomPolicy[K]) Len() int { return len(p.items) }

func (p *RandomPolicy[K]) removeAt(i int) {
	lastIdx := len(p.items) - 1
	key := p.items[i]
	last := p.items[lastIdx]
	p.items[i] = last
	p.index[last] = i
	var zero K
	p.items[lastIdx] = zero
	p.items = p.items[:lastIdx]
	delete(p.index, key)
}
