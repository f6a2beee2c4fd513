package policy

import "container/list"

// LRUPolicy implements the Least Recently Used (LRU) eviction strategy.
// The list runs from least recently used (front) to most recently used (back);
// the index gives O(1) promotion on access.
type LRUPolicy[K comparable] struct {
	order *list.List
	items map[K]*list.Element
}

// NewLRU creates a new LRU policy instance.
func NewLRU[K comparable]() *LRUPolicy[K] {
	return &LRUPolicy[K]{
		order: list.New(),
		items: make(map[K]*list.Element),
	}
}

func (p *LRUPolicy[K]) OnAccess(key K) {
	if elem, ok := p.items[key]; ok {
		p.order.MoveToBack(elem)
	}
}

func (p *LRUPolicy[K]) OnInsert(key K) {
	// If already exists, just update access
	if elem, ok := p.items[key]; ok {
		p.order.MoveToBack(elem)
		return
	}
	p.items[key] = p.order.PushBack(key)
}

func (p *LRUPolicy[K]) OnRemove(key K) {
	if elem, ok := p.items[key]; ok {
		p.order.Remove(elem)
		delete(p.items, key)
	}
}

func (p *LRUPolicy[K]) Evict() (K, bool) {
	elem := p.order.Front()
	if elem == nil {
		var zero K
		return zero, false
	}
	key := p.order.Remove(elem).(K)
	delete(p.items, key)
	return key, true
}

func (p *LRUPolicy[K]) Len() int { return p.order.Len() }
