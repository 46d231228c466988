package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"assembly-rag/internal/indexer"
)

type fakeIndexer struct {
	mu       sync.Mutex
	calls    []string
	done     chan struct{}
	cov      *indexer.Coverage
	covErr   error
	indexErr error
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{done: make(chan struct{}, 1)}
}

func (f *fakeIndexer) Reindex(_ context.Context, force bool) (*indexer.Stats, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf("reindex force=%t", force))
	f.mu.Unlock()
	f.done <- struct{}{}
	if f.indexErr != nil {
		return nil, f.indexErr
	}
	return &indexer.Stats{FilesProcessed: 1}, nil
}

func (f *fakeIndexer) Coverage(context.Context) (*indexer.Coverage, error) {
	return f.cov, f.covErr
}

func (f *fakeIndexer) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("indexing goroutine did not finish")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestIndexHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		indexErr  error
		wantCalls []string
		wantMsg   string
	}{
		{name: "index", url: "/api/v1/index", wantCalls: []string{"reindex force=false"}, wantMsg: "Indexing started"},
		{name: "force", url: "/api/v1/index?force=true", wantCalls: []string{"reindex force=true"}, wantMsg: "Force re-indexing"},
		{name: "run in progress", url: "/api/v1/index?force=true", indexErr: indexer.ErrInProgress, wantCalls: []string{"reindex force=true"}, wantMsg: "Force re-indexing"},
		{name: "run fails", url: "/api/v1/index", indexErr: errors.New("qdrant down"), wantCalls: []string{"reindex force=false"}, wantMsg: "Indexing started"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := newFakeIndexer()
			idx.indexErr = tt.indexErr
			handler := NewIndexHandler(context.Background(), idx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.url, nil))

			if w.Code != http.StatusAccepted {
				t.Fatalf("status = %d, want 202", w.Code)
			}
			var resp IndexResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != "accepted" || !strings.HasPrefix(resp.Message, tt.wantMsg) {
				t.Errorf("response = %+v", resp)
			}

			calls := idx.wait(t)
			if strings.Join(calls, ",") != strings.Join(tt.wantCalls, ",") {
				t.Errorf("calls = %v, want %v", calls, tt.wantCalls)
			}
		})
	}
}

func TestIndexHandler_MethodNotAllowed(t *testing.T) {
	handler := NewIndexHandler(context.Background(), newFakeIndexer())
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/index", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestIndexHandler_Coverage(t *testing.T) {
	idx := newFakeIndexer()
	idx.cov = &indexer.Coverage{Minutes: 3, Statements: 250, IndexVersion: "abc"}
	handler := NewIndexHandler(context.Background(), idx)

	w := httptest.NewRecorder()
	handler.Coverage(w, httptest.NewRequest(http.MethodGet, "/api/v1/index/coverage", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var cov indexer.Coverage
	if err := json.NewDecoder(w.Body).Decode(&cov); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if cov != *idx.cov {
		t.Errorf("coverage = %+v, want %+v", cov, *idx.cov)
	}

	idx.covErr = errors.New("db closed")
	w = httptest.NewRecorder()
	handler.Coverage(w, httptest.NewRequest(http.MethodGet, "/api/v1/index/coverage", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
