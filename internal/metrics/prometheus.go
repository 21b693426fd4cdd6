//go:build !noprom

package metrics

import (
	"fmt"
	"log"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

type promRecorder struct {
	storeTotal   *prom.CounterVec
	storeSeconds *prom.HistogramVec
	toolTotal    *prom.CounterVec
	toolSeconds  *prom.HistogramVec
	stmtCache    *prom.CounterVec
	poolInUse    prom.Gauge
	poolIdle     prom.Gauge
	vocabSize    *prom.GaugeVec
}

func (p *promRecorder) IncStoreOpTotal(op string, success bool) {
	p.storeTotal.WithLabelValues(op, fmt.Sprintf("%t", success)).Inc()
}

func (p *promRecorder) ObserveStoreOpSeconds(op string, success bool, seconds float64) {
	p.storeSeconds.WithLabelValues(op, fmt.Sprintf("%t", success)).Observe(seconds)
}

func (p *promRecorder) IncToolTotal(tool string, success bool) {
	p.toolTotal.WithLabelValues(tool, fmt.Sprintf("%t", success)).Inc()
}

func (p *promRecorder) ObserveToolSeconds(tool string, success bool, seconds float64) {
	p.toolSeconds.WithLabelValues(tool, fmt.Sprintf("%t", success)).Observe(seconds)
}

func (p *promRecorder) IncStmtCacheHit(kind string) {
	p.stmtCache.WithLabelValues(kind, "hit").Inc()
}

func (p *promRecorder) IncStmtCacheMiss(kind string) {
	p.stmtCache.WithLabelValues(kind, "miss").Inc()
}

func (p *promRecorder) ObservePoolStats(inUse, idle int) {
	p.poolInUse.Set(float64(inUse))
	p.poolIdle.Set(float64(idle))
}

func (p *promRecorder) SetVocabularySize(kind string, n int) {
	p.vocabSize.WithLabelValues(kind).Set(float64(n))
}

func newPromRecorder() *promRecorder {
	return &promRecorder{
		storeTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "store_ops_total",
			Help: "Total number of ontology store operations",
		}, []string{"op", "success"}),
		storeSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "store_op_seconds",
			Help:    "Ontology store operation duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"op", "success"}),
		toolTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "tool_calls_total",
			Help: "Total number of tool handler calls",
		}, []string{"tool", "success"}),
		toolSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "tool_call_seconds",
			Help:    "Tool handler duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"tool", "success"}),
		stmtCache: prom.NewCounterVec(prom.CounterOpts{
			Name: "stmt_cache_total",
			Help: "Prepared statement cache lookups",
		}, []string{"kind", "result"}),
		poolInUse: prom.NewGauge(prom.GaugeOpts{
			Name: "db_pool_in_use",
			Help: "Connections currently in use",
		}),
		poolIdle: prom.NewGauge(prom.GaugeOpts{
			Name: "db_pool_idle",
			Help: "Idle connections in the pool",
		}),
		vocabSize: prom.NewGaugeVec(prom.GaugeOpts{
			Name: "vocabulary_terms",
			Help: "Number of terms in each vocabulary snapshot",
		}, []string{"kind"}),
	}
}

func (p *promRecorder) collectors() []prom.Collector {
	return []prom.Collector{
		p.storeTotal, p.storeSeconds, p.toolTotal, p.toolSeconds,
		p.stmtCache, p.poolInUse, p.poolIdle, p.vocabSize,
	}
}

func enablePrometheus(addr string) error {
	registry := prom.NewRegistry()
	p := newPromRecorder()
	registry.MustRegister(p.collectors()...)
	SetRecorder(p)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("metrics server error: %v", err)
		}
	}()
	return nil
}
