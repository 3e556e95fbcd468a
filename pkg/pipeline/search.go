package pipeline

import (
	"context"
	"fmt"
	"log/slog"
)

type searchStep struct {
	name string
}

func newSearchStep(name string) Step {
	return &searchStep{name: name}
}

func (s *searchStep) Name() string { return s.name }

// Run queries every configured search term and collects the unique result
// URLs in first-seen order. A failing query is logged and skipped; the run
// continues with whatever the other queries returned.
func (s *searchStep) Run(ctx context.Context, sc *StepContext) error {
	if sc.Searcher == nil {
		return fmt.Errorf("no searcher configured")
	}

	cfg := sc.Workflow.Search
	seen := make(map[string]bool)
	var collected []string

	for _, query := range cfg.Queries {
		if err := ctx.Err(); err != nil {
			return err
		}

		slog.Info("searching", "step", s.name, "query", query)
		urls, err := sc.Searcher.Search(ctx, query, cfg.MaxResults, cfg.Depth)
		if err != nil {
			slog.Warn("search query failed", "step", s.name, "query", query, "error", err)
			continue
		}

		for _, u := range urls {
			if seen[u] {
				continue
			}
			seen[u] = true
			collected = append(collected, u)
		}
	}

	slog.Info("collected article URLs", "step", s.name, "count", len(collected))
	sc.State.URLs = collected
	return nil
}
