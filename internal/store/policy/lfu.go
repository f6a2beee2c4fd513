package policy

import "container/heap"

// lfuItem represents an item in the priority queue.
type lfuItem[K comparable] struct {
	key       K
	frequency int
	seq       uint64 // insertion order, breaks frequency ties
	index     int    // The index of the item in the heap.
}

// priorityQueue implements heap.Interface and holds Items.
type priorityQueue[K comparable] []*lfuItem[K]

func (pq priorityQueue[K]) Len() int { return len(pq) }

func (pq priorityQueue[K]) Less(i, j int) bool {
	// We want Pop to give us the lowest frequency (Min-Heap)
	if pq[i].frequency != pq[j].frequency {
		return pq[i].frequency < pq[j].frequency
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue[K]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue[K]) Push(x any) {
	n := len(*pq)
	item := x.(*lfuItem[K])
	item.index = n
	*pq = append(*pq, item)
}

func (pq *priorityQueue[K]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // avoid memory leak
	item.index = -1 // for safety
	*pq = old[0 : n-1]
	return item
}

// LFUPolicy implements the Least Frequently Used (LFU) eviction strategy.
// Among keys with equal frequency the oldest insertion is evicted first.
type LFUPolicy[K comparable] struct {
	pq    priorityQueue[K]
	items map[K]*lfuItem[K]
	seq   uint64
}

// NewLFU creates a new LFU policy instance.
func NewLFU[K comparable]() *LFUPolicy[K] {
	return &LFUPolicy[K]{
		pq:    make(priorityQueue[K], 0),
		items: make(map[K]*lfuItem[K]),
	}
}

func (p *LFUPolicy[K]) OnAccess(key K) {
	if item, ok := p.items[key]; ok {
		item.frequency++
		heap.Fix(&p.pq, item.index)
	}
}

func (p *LFUPolicy[K]) OnInsert(key K) {
	if _, ok := p.items[key]; ok {
		p.OnAccess(key)
		return
	}
	p.seq++
	item := &lfuItem[K]{
		key:       key,
		frequency: 1,
		seq:       p.seq,
	}
	heap.Push(&p.pq, item)
	p.items[key] = item
}

func (p *LFUPolicy[K]) OnRemove(key K) {
	if item, ok := p.items[key]; ok {
		heap.Remove(&p.pq, item.index)
		delete(p.items, key)
	}
}

func (p *LFUPolicy[K]) Evict() (K, bool) {
	if len(p.pq) == 0 {
		var zero K
		return zero, false
	}
	item := heap.Pop(&p.pq).(*lfuItem[K])
	delete(p.items, item.key)
	return item.key, true
}

func (p *LFUPolicy[K]) Len() int { return len(p.pq) }

// Frequency reports the access count tracked for key.
func (p *LFUPolicy[K]) Frequency(key K) (int, bool) {
	item, ok := p.items[key]
	if !ok {
		return 0, false
	}
	return item.frequency, true
}
