package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(strategyTotal.WithLabelValues("internal_only"))
	IncStrategy("internal_only")
	if got := testutil.ToFloat64(strategyTotal.WithLabelValues("internal_only")); got != before+1 {
		t.Errorf("strategy_total = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(indexedStatements.WithLabelValues("indexed"))
	AddIndexed("indexed", 3)
	AddIndexed("indexed", 0)
	if got := testutil.ToFloat64(indexedStatements.WithLabelValues("indexed")); got != before+3 {
		t.Errorf("indexed_statements_total = %v, want %v", got, before+3)
	}

	before = testutil.ToFloat64(terminalTotal.WithLabelValues("success"))
	ObserveRun("success", 120*time.Millisecond)
	if got := testutil.ToFloat64(terminalTotal.WithLabelValues("success")); got != before+1 {
		t.Errorf("terminal_total = %v, want %v", got, before+1)
	}
}

func TestHandler(t *testing.T) {
	ObserveRetriever("internal", time.Now(), 4)
	IncEmbeddingCache("hit")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{
		"assembly_rag_retriever_latency_seconds",
		"assembly_rag_retriever_results",
		"assembly_rag_embedding_cache_total",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
