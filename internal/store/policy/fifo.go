package policy

import "container/list"

// FIFOPolicy implements the First-In-First-Out (FIFO) eviction strategy.
type FIFOPolicy[K comparable] struct {
	order *list.List
	items map[K]*list.Element
}

// NewFIFO creates a new FIFO policy instance.
func NewFIFO[K comparable]() *FIFOPolicy[K] {
	return &FIFOPolicy[K]{
		order: list.New(),
		items: make(map[K]*list.Element),
	}
}

func (p *FIFOPolicy[K]) OnAccess(key K) {
	// FIFO does not change order on access
}

func (p *FIFOPolicy[K]) OnInsert(key K) {
	// A tracked key keeps its original insertion slot.
	if _, ok := p.items[key]; ok {
		return
	}
	p.items[key] = p.order.PushBack(key)
}

func (p *FIFOPolicy[K]) OnRemove(key K) {
	if elem, ok := p.items[key]; ok {
		p.order.Remove(elem)
		delete(p.items, key)
	}
}

func (p *FIFOPolicy[K]) Evict() (K, bool) {
	elem := p.order.Front() // The oldest element
	if elem == nil {
		var zero K
		return zero, false
	}
	key := p.order.Remove(elem).(K)
	delete(p.items, key)
	return key, true
}

func (p *FIFOPolicy[K]) Len() int { return p.order.Len() }
