package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/api"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/classify"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/reader"
)

type fakeSearcher struct {
	results map[string][]string
	fail    map[string]bool
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int, _ string) ([]string, error) {
	if f.fail[query] {
		return nil, fmt.Errorf("search backend down")
	}
	return f.results[query], nil
}

type fakeExtractor struct {
	content map[string]string
	fail    map[string]bool
}

func (f *fakeExtractor) Extract(_ context.Context, articleURL string) (*reader.Article, error) {
	if f.fail[articleURL] {
		return nil, fmt.Errorf("page unreachable")
	}
	return &reader.Article{URL: articleURL, Content: f.content[articleURL]}, nil
}

type fakeClassifier struct {
	verdicts map[string]*classify.Verdict // keyed by article content
	fail     map[string]bool
}

func (f *fakeClassifier) Classify(_ context.Context, articleText string) (*classify.Verdict, error) {
	if f.fail[articleText] {
		return nil, fmt.Errorf("model error")
	}
	if v, ok := f.verdicts[articleText]; ok {
		return v, nil
	}
	return &classify.Verdict{IsImportant: false}, nil
}

func testWorkflow(dir string) *api.Workflow {
	return &api.Workflow{
		Feed: api.FeedConfig{
			Title:       "テストフィード",
			Link:        "https://example.com/repo",
			Description: "テスト用の説明",
		},
		Search:   api.SearchConfig{Queries: []string{"q1", "q2"}, MaxResults: 5, Depth: "basic"},
		Schedule: "22:00",
		Dir:      dir,
	}
}

func testContext(dir string) *StepContext {
	return &StepContext{
		WorkDir:  dir,
		Workflow: testWorkflow(dir),
		Now:      func() time.Time { return time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC) },
		State:    NewState(),
	}
}
