package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/httpx"
)

// Local fetches pages directly and extracts the readable text with
// readability. Used when the reader proxy should be bypassed.
type Local struct {
	httpClient *http.Client
	userAgent  string
}

// NewLocal creates a local extractor.
func NewLocal(timeout time.Duration, userAgent string) *Local {
	return &Local{
		httpClient: httpx.NewClient(timeout),
		userAgent:  userAgent,
	}
}

// Extract fetches articleURL and extracts its readable content.
func (l *Local) Extract(ctx context.Context, articleURL string) (*Article, error) {
	pageURL, err := url.Parse(articleURL)
	if err != nil {
		return nil, fmt.Errorf("parsing article URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &httpx.StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extracting readable content from %s: %w", articleURL, err)
	}

	return &Article{
		URL:     articleURL,
		Title:   article.Title,
		Content: article.TextContent,
	}, nil
}
