// Package classify sends article text to the Gemini API and parses the
// model's importance verdict.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/httpx"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/retry"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// Verdict is the strict JSON document the model must answer with.
type Verdict struct {
	IsImportant bool   `json:"is_important"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Category    string `json:"category"`
}

// PromptData is the data available to the prompt template.
type PromptData struct {
	ArticleText string
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	// BaseURL can be overridden in tests.
	BaseURL string

	apiKey     string
	model      string
	prompt     *template.Template
	httpClient *http.Client
	retrier    *retry.Retrier
}

// NewClient creates a Gemini client. promptText is a text/template with
// sprig functions over PromptData; empty means the built-in prompt.
func NewClient(apiKey, model, promptText string, timeout time.Duration) (*Client, error) {
	if promptText == "" {
		promptText = DefaultPrompt
	}

	tmpl, err := template.New("prompt").Funcs(sprig.FuncMap()).Parse(promptText)
	if err != nil {
		return nil, fmt.Errorf("parsing classifier prompt: %w", err)
	}

	return &Client{
		BaseURL:    defaultGeminiBaseURL,
		apiKey:     apiKey,
		model:      model,
		prompt:     tmpl,
		httpClient: httpx.NewClient(timeout),
		retrier:    retry.New(retry.DefaultConfig(), httpx.Retryable),
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Classify renders the prompt for articleText, calls the model, and decodes
// its JSON verdict.
func (c *Client) Classify(ctx context.Context, articleText string) (*Verdict, error) {
	var promptBuf bytes.Buffer
	if err := c.prompt.Execute(&promptBuf, PromptData{ArticleText: articleText}); err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: promptBuf.String()}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	var answer string
	err = c.retrier.Do(ctx, func() error {
		a, err := c.generate(ctx, body)
		if err != nil {
			return err
		}
		answer = a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("calling gemini: %w", err)
	}

	var verdict Verdict
	if err := json.Unmarshal([]byte(StripCodeFence(answer)), &verdict); err != nil {
		return nil, fmt.Errorf("decoding model verdict from %q: %w", truncate(answer, 200), err)
	}

	return &verdict, nil
}

func (c *Client) generate(ctx context.Context, body []byte) (string, error) {
	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &httpx.StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contains no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// StripCodeFence removes markdown code fences the model tends to wrap its
// JSON answer in.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
