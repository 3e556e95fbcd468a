package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/api"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/feed"
)

type harvestStep struct {
	name string
	cfg  *api.HarvestConfig
}

func newHarvestStep(name string, cfg *api.HarvestConfig) Step {
	return &harvestStep{name: name, cfg: cfg}
}

func (s *harvestStep) Name() string { return s.name }

// Run extracts and classifies every collected URL with bounded concurrency.
// Per-URL failures are logged and skipped; only articles the model marks
// important survive. Result order follows the collection order.
func (s *harvestStep) Run(ctx context.Context, sc *StepContext) error {
	extractor, ok := sc.Extractors[s.cfg.Extractor]
	if !ok {
		return fmt.Errorf("extractor %q not available", s.cfg.Extractor)
	}
	if sc.Classifier == nil {
		return fmt.Errorf("no classifier configured")
	}

	results := make([]*feed.Item, len(sc.State.URLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, articleURL := range sc.State.URLs {
		i, articleURL := i, articleURL
		g.Go(func() error {
			results[i] = s.harvestOne(gctx, sc, extractor, articleURL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	items := make([]feed.Item, 0, len(results))
	for _, item := range results {
		if item != nil {
			items = append(items, *item)
		}
	}

	slog.Info("harvest finished", "step", s.name, "processed", len(sc.State.URLs), "kept", len(items))
	sc.State.Items = items
	return nil
}

func (s *harvestStep) harvestOne(ctx context.Context, sc *StepContext, extractor Extractor, articleURL string) *feed.Item {
	if sc.Limiter != nil {
		if err := sc.Limiter.Wait(ctx, articleURL); err != nil {
			slog.Warn("rate limit wait aborted", "step", s.name, "url", articleURL, "error", err)
			return nil
		}
	}

	article, err := extractor.Extract(ctx, articleURL)
	if err != nil {
		slog.Warn("article extraction failed", "step", s.name, "url", articleURL, "error", err)
		return nil
	}

	if len(article.Content) < s.cfg.MinContentLength {
		slog.Debug("article content too short", "step", s.name, "url", articleURL, "length", len(article.Content))
		return nil
	}

	verdict, err := sc.Classifier.Classify(ctx, article.Content)
	if err != nil {
		slog.Warn("classification failed", "step", s.name, "url", articleURL, "error", err)
		return nil
	}
	if !verdict.IsImportant {
		slog.Debug("article not important", "step", s.name, "url", articleURL)
		return nil
	}

	title := verdict.Title
	if title == "" {
		title = article.Title
	}
	if title == "" {
		title = "No Title"
	}

	return &feed.Item{
		Title:     title,
		Link:      articleURL,
		Summary:   verdict.Summary,
		Category:  verdict.Category,
		Published: sc.Now(),
	}
}
