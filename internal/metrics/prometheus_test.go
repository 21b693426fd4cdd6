//go:build !noprom

package metrics

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromRecorderExportsSeries(t *testing.T) {
	registry := prom.NewRegistry()
	p := newPromRecorder()
	registry.MustRegister(p.collectors()...)

	p.IncStoreOpTotal("list_classes", true)
	p.ObserveStoreOpSeconds("list_classes", true, 0.01)
	p.IncToolTotal("get_terms", true)
	p.ObserveToolSeconds("get_terms", true, 0.02)
	p.IncStmtCacheHit("prepare")
	p.IncStmtCacheMiss("prepare")
	p.ObservePoolStats(1, 2)
	p.SetVocabularySize("tag", 7)

	families, err := registry.Gather()
	require.NoError(t, err)

	got := map[string]bool{}
	for _, mf := range families {
		got[mf.GetName()] = true
	}
	for _, name := range []string{
		"store_ops_total",
		"store_op_seconds",
		"tool_calls_total",
		"tool_call_seconds",
		"stmt_cache_total",
		"db_pool_in_use",
		"db_pool_idle",
		"vocabulary_terms",
	} {
		assert.True(t, got[name], "missing series %s", name)
	}
}
