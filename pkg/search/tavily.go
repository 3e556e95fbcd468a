// Package search queries the Tavily web search API for article URLs.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/httpx"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/retry"
)

const defaultBaseURL = "https://api.tavily.com"

// Client calls the Tavily search endpoint.
type Client struct {
	// BaseURL can be overridden in tests.
	BaseURL string

	apiKey     string
	httpClient *http.Client
	retrier    *retry.Retrier
}

// NewClient creates a Tavily client.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: httpx.NewClient(timeout),
		retrier:    retry.New(retry.DefaultConfig(), httpx.Retryable),
	}
}

type searchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeImages bool   `json:"include_images"`
	MaxResults    int    `json:"max_results"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Search returns the result URLs for one query.
func (c *Client) Search(ctx context.Context, query string, maxResults int, depth string) ([]string, error) {
	body, err := json.Marshal(searchRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   depth,
		IncludeImages: false,
		MaxResults:    maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling search request: %w", err)
	}

	var urls []string
	err = c.retrier.Do(ctx, func() error {
		resp, err := c.post(ctx, body)
		if err != nil {
			return err
		}
		urls = resp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	return urls, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &httpx.StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	urls := make([]string, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	return urls, nil
}
