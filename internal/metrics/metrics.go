// Package metrics holds the Prometheus collectors for the query and indexing paths.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "assembly_rag"

var (
	once     sync.Once
	registry = prometheus.NewRegistry()

	retrieverLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "retriever_latency_seconds",
		Help:      "Latency of retriever calls in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 15},
	}, []string{"source"})

	retrieverResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "retriever_results",
		Help:      "Number of documents returned by a retriever",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 20},
	}, []string{"source"})

	strategyTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strategy_total",
		Help:      "Queries routed to each retrieval strategy",
	}, []string{"strategy"})

	terminalTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "terminal_total",
		Help:      "Orchestrator runs by terminal reason",
	}, []string{"reason"})

	embeddingCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "embedding_cache_total",
		Help:      "Embedding cache lookups by result",
	}, []string{"result"})

	indexedStatements = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "indexed_statements_total",
		Help:      "Statements processed by the indexer by outcome",
	}, []string{"outcome"})

	queryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_duration_seconds",
		Help:      "End-to-end orchestrator run time in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

func ensureRegistered() {
	once.Do(func() {
		registry.MustRegister(
			retrieverLatency, retrieverResults, strategyTotal, terminalTotal,
			embeddingCache, indexedStatements, queryDuration,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}

// ObserveRetriever records latency and result size for a retriever source.
func ObserveRetriever(source string, start time.Time, results int) {
	ensureRegistered()
	retrieverLatency.WithLabelValues(source).Observe(time.Since(start).Seconds())
	retrieverResults.WithLabelValues(source).Observe(float64(results))
}

// IncStrategy counts a routing decision.
func IncStrategy(strategy string) {
	ensureRegistered()
	strategyTotal.WithLabelValues(strategy).Inc()
}

// ObserveRun records a finished orchestrator run.
func ObserveRun(reason string, elapsed time.Duration) {
	ensureRegistered()
	terminalTotal.WithLabelValues(reason).Inc()
	queryDuration.Observe(elapsed.Seconds())
}

// IncEmbeddingCache counts a cache lookup; result is "hit" or "miss".
func IncEmbeddingCache(result string) {
	ensureRegistered()
	embeddingCache.WithLabelValues(result).Inc()
}

// AddIndexed counts indexer outcomes ("indexed", "unchanged", "skipped", "failed").
func AddIndexed(outcome string, n int) {
	if n <= 0 {
		return
	}
	ensureRegistered()
	indexedStatements.WithLabelValues(outcome).Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	ensureRegistered()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
