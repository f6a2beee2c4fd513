package policy

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearLRU keeps keys in a slice ordered from least to most recently used.
// Every access rescans the slice; it serves as the reference model.
type linearLRU[K comparable] struct {
	keys []K
}

func (l *linearLRU[K]) OnInsert(key K) {
	l.OnRemove(key)
	l.keys = append(l.keys, key)
}

func (l *linearLRU[K]) OnAccess(key K) {
	if i := slices.Index(l.keys, key); i >= 0 {
		l.keys = append(slices.Delete(l.keys, i, i+1), key)
	}
}

func (l *linearLRU[K]) OnRemove(key K) {
	if i := slices.Index(l.keys, key); i >= 0 {
		l.keys = slices.Delete(l.keys, i, i+1)
	}
}

func (l *linearLRU[K]) Evict() (K, bool) {
	if len(l.keys) == 0 {
		var zero K
		return zero, false
	}
	k := l.keys[0]
	l.keys = l.keys[1:]
	return k, true
}

func (l *linearLRU[K]) Len() int { return len(l.keys) }

var _ EvictionPolicy[int] = (*linearLRU[int])(nil)

func TestLRUPolicy_MatchesLinearModel(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		r := rand.New(rand.NewSource(seed))
		fast := NewLRU[int]()
		model := &linearLRU[int]{}

		for step := 0; step < 2_000; step++ {
			k := r.Intn(32)
			switch op := r.Intn(10); {
			case op < 4:
				fast.OnInsert(k)
				model.OnInsert(k)
			case op < 8:
				fast.OnAccess(k)
				model.OnAccess(k)
			case op < 9:
				fast.OnRemove(k)
				model.OnRemove(k)
			default:
				gotK, gotOK := fast.Evict()
				wantK, wantOK := model.Evict()
				require.Equal(t, wantOK, gotOK, "seed=%d step=%d", seed, step)
				require.Equal(t, wantK, gotK, "seed=%d step=%d", seed, step)
			}
			require.Equal(t, model.Len(), fast.Len(), "seed=%d step=%d", seed, step)
		}

		assert.Equal(t, drain[int](model), drain[int](fast), "seed=%d final order", seed)
	}
}

// Repeated reads of the same key leave the order where a single read put it.
func TestLRUPolicy_IdempotentAccess(t *testing.T) {
	once := NewLRU[string]()
	many := NewLRU[string]()
	for _, p := range []*LRUPolicy[string]{once, many} {
		p.OnInsert("a")
		p.OnInsert("b")
		p.OnInsert("c")
	}

	once.OnAccess("a")
	for i := 0; i < 5; i++ {
		many.OnAccess("a")
	}

	assert.Equal(t, drain[string](once), drain[string](many))
}
