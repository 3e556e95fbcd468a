package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/api"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/feed"
)

type composeStep struct {
	name string
	cfg  *api.ComposeConfig
}

func newComposeStep(name string, cfg *api.ComposeConfig) Step {
	return &composeStep{name: name, cfg: cfg}
}

func (s *composeStep) Name() string { return s.name }

// Run renders the RSS artifact from the curated items, optionally merging
// entries from the previously published feed. With nothing to publish the
// artifact is not written, so a later stage step fails the run before any
// deployment happens.
func (s *composeStep) Run(ctx context.Context, sc *StepContext) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	items := sc.State.Items
	outPath := filepath.Join(sc.WorkDir, s.cfg.Output)

	if s.cfg.MergePrevious {
		merged, err := s.mergePrevious(outPath, items)
		if err != nil {
			return err
		}
		items = merged
	}

	if s.cfg.MaxItems > 0 && len(items) > s.cfg.MaxItems {
		items = items[:s.cfg.MaxItems]
	}

	if len(items) == 0 {
		slog.Warn("no important articles, feed not written", "step", s.name)
		return nil
	}

	out, err := feed.Render(sc.Workflow.Feed, items, sc.Now())
	if err != nil {
		return fmt.Errorf("rendering feed: %w", err)
	}

	if err := os.WriteFile(outPath, out, 0o600); err != nil {
		return fmt.Errorf("writing feed artifact: %w", err)
	}

	slog.Info("feed written", "step", s.name, "output", s.cfg.Output, "items", len(items))
	sc.State.Artifacts[s.name] = outPath
	return nil
}

// mergePrevious folds the previously published feed into items. An absent
// previous feed is not an error, the merge is simply skipped.
func (s *composeStep) mergePrevious(path string, items []feed.Item) ([]feed.Item, error) {
	previous, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("no previous feed to merge", "step", s.name, "path", path)
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading previous feed: %w", err)
	}

	merged, err := feed.MergePrevious(previous, items, s.cfg.MaxItems)
	if err != nil {
		slog.Warn("previous feed unreadable, starting fresh", "step", s.name, "error", err)
		return items, nil
	}

	slog.Info("merged previous feed", "step", s.name, "total", len(merged))
	return merged, nil
}
