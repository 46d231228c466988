// Package websearch is a client for the Tavily web search API.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("web search is not configured")

// Depth values accepted by the search endpoint.
const (
	DepthBasic    = "basic"
	DepthAdvanced = "advanced"
)

// Client calls the Tavily search endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Depth   string
	client  *http.Client
}

// NewClient creates a Tavily client. An empty apiKey yields a client whose
// Search always returns ErrNotConfigured.
func NewClient(baseURL, apiKey, depth string) *Client {
	if depth == "" {
		depth = DepthAdvanced
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Depth:   depth,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the client has credentials.
func (c *Client) Configured() bool {
	return c != nil && c.APIKey != ""
}

// SearchRequest is the request body of POST /search.
type SearchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
	IncludeImages bool   `json:"include_images"`
}

// Result is one ranked web page.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// SearchResponse is the body returned by POST /search.
type SearchResponse struct {
	Query        string   `json:"query"`
	Answer       string   `json:"answer"`
	Results      []Result `json:"results"`
	ResponseTime float64  `json:"response_time"`
}

// Search runs one query asking for a synthesized answer and at most maxResults pages.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (*SearchResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if maxResults <= 0 {
		return nil, fmt.Errorf("max results must be greater than 0")
	}

	body, err := json.Marshal(SearchRequest{
		APIKey:        c.APIKey,
		Query:         query,
		SearchDepth:   c.Depth,
		MaxResults:    maxResults,
		IncludeAnswer: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/search", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send search request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("web search bad status %d: %s", resp.StatusCode, string(raw))
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if len(searchResp.Results) > maxResults {
		searchResp.Results = searchResp.Results[:maxResults]
	}
	return &searchResp, nil
}
