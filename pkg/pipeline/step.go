// Package pipeline executes the workflow's steps in order: collect article
// URLs, harvest and classify their content, compose the RSS artifact, stage
// it, and publish the staged directory.
package pipeline

import (
	"context"
	"time"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/api"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/classify"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/feed"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/ratelimit"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/reader"
)

// Searcher finds article URLs for a query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int, depth string) ([]string, error)
}

// Extractor turns an article URL into readable text.
type Extractor interface {
	Extract(ctx context.Context, articleURL string) (*reader.Article, error)
}

// Classifier judges an article's importance.
type Classifier interface {
	Classify(ctx context.Context, articleText string) (*classify.Verdict, error)
}

// State is the data threaded between steps during one run.
type State struct {
	URLs      []string
	Items     []feed.Item
	Artifacts map[string]string // producing step name -> absolute file path
	StagedDir string
}

// NewState creates an empty run state.
func NewState() *State {
	return &State{Artifacts: make(map[string]string)}
}

// StepContext provides the runtime dependencies and state for the steps.
type StepContext struct {
	WorkDir     string
	Workflow    *api.Workflow
	Searcher    Searcher
	Extractors  map[string]Extractor
	Classifier  Classifier
	Limiter     *ratelimit.Limiter
	SkipPublish bool
	Now         func() time.Time
	State       *State
}

// Step is the interface all pipeline steps implement.
type Step interface {
	Name() string
	Run(ctx context.Context, sc *StepContext) error
}
