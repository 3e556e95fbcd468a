package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/httpx"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/retry"
)

const defaultJinaBaseURL = "https://r.jina.ai"

// Jina extracts article text through the Jina Reader proxy, which returns
// a markdown rendering of the page.
type Jina struct {
	// BaseURL can be overridden in tests.
	BaseURL string

	httpClient *http.Client
	retrier    *retry.Retrier
}

// NewJina creates a Jina Reader client.
func NewJina(timeout time.Duration) *Jina {
	return &Jina{
		BaseURL:    defaultJinaBaseURL,
		httpClient: httpx.NewClient(timeout),
		retrier:    retry.New(retry.DefaultConfig(), httpx.Retryable),
	}
}

// Extract fetches the markdown rendering of articleURL.
func (j *Jina) Extract(ctx context.Context, articleURL string) (*Article, error) {
	var content string
	err := j.retrier.Do(ctx, func() error {
		c, err := j.fetch(ctx, articleURL)
		if err != nil {
			return err
		}
		content = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", articleURL, err)
	}

	return &Article{
		URL:     articleURL,
		Content: TrimToHeading(content),
	}, nil
}

func (j *Jina) fetch(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.BaseURL+"/"+articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := j.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &httpx.StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}
