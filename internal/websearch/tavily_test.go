package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Search(t *testing.T) {
	tests := []struct {
		name        string
		maxResults  int
		serverResp  func(t *testing.T, w http.ResponseWriter, r *http.Request)
		wantErr     bool
		wantAnswer  string
		wantResults int
	}{
		{
			name:       "answer and results",
			maxResults: 3,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Errorf("expected /search, got %s", r.URL.Path)
				}
				if r.Header.Get("Authorization") != "Bearer tvly-key" {
					t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
				}
				var req SearchRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decode request: %v", err)
					return
				}
				if req.APIKey != "tvly-key" || req.Query != "저출생 대책" {
					t.Errorf("request = %+v", req)
				}
				if req.SearchDepth != DepthAdvanced || !req.IncludeAnswer || req.MaxResults != 3 {
					t.Errorf("request options = %+v", req)
				}
				_ = json.NewEncoder(w).Encode(SearchResponse{
					Answer: "요약",
					Results: []Result{
						{Title: "기사 1", URL: "https://example.com/1", Content: "본문 1", Score: 0.9},
						{Title: "기사 2", URL: "https://example.com/2", Content: "본문 2", Score: 0.8},
					},
				})
			},
			wantAnswer:  "요약",
			wantResults: 2,
		},
		{
			name:       "results beyond max are dropped",
			maxResults: 1,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(SearchResponse{
					Results: []Result{{Title: "a", Content: "a"}, {Title: "b", Content: "b"}},
				})
			},
			wantResults: 1,
		},
		{
			name:       "server error",
			maxResults: 3,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"invalid key"}`))
			},
			wantErr: true,
		},
		{
			name:       "invalid max results",
			maxResults: 0,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				t.Error("server should not be called")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.serverResp(t, w, r)
			}))
			defer server.Close()

			client := NewClient(server.URL+"/", "tvly-key", "")
			resp, err := client.Search(context.Background(), "저출생 대책", tt.maxResults)

			if tt.wantErr {
				if err == nil {
					t.Error("Search() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Search() unexpected error: %v", err)
			}
			if resp.Answer != tt.wantAnswer {
				t.Errorf("Answer = %q, want %q", resp.Answer, tt.wantAnswer)
			}
			if len(resp.Results) != tt.wantResults {
				t.Errorf("len(Results) = %d, want %d", len(resp.Results), tt.wantResults)
			}
		})
	}
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "", DepthBasic)
	if client.Configured() {
		t.Error("Configured() = true without API key")
	}

	_, err := client.Search(context.Background(), "q", 3)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Search() error = %v, want ErrNotConfigured", err)
	}

	var nilClient *Client
	if nilClient.Configured() {
		t.Error("nil client should not be configured")
	}
}
