package observability

import (
	"testing"
	"time"

	"cache-manager/internal/store"
	"cache-manager/internal/store/policy"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CacheHooks(t *testing.T) {
	m := New(prometheus.NewRegistry(), "test")
	c := store.MustNew[string, string](1, policy.NewFIFO[string](), store.WithMetrics[string, string](m))

	_, _, err := c.Insert("a", "1")
	require.NoError(t, err)
	c.Get("a")
	c.Get("b")
	_, _, err = c.Insert("b", "2")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HitsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MissesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EvictionsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Entries))
}

func TestMetrics_ObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "test")

	m.ObserveOperation("set", "success", time.Now())
	m.ObserveOperation("set", "success", time.Now())
	m.ObserveOperation("set", "error", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("set", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("set", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.DurationSeconds))
}

func TestMetrics_RegistersUnderNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "lru")
	m.Hit()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "lru_hits_total")
	assert.Contains(t, names, "lru_entries")
}
