package api

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalWorkflow = `
feed:
  title: Test Feed
  link: https://example.com/repo
  description: test description
search:
  queries:
    - test query
pipeline:
  - name: collect
    type: search
  - name: harvest
    type: harvest
  - name: feed
    type: compose
`

func writeWorkflow(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "newsfeed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWorkflow_Defaults(t *testing.T) {
	path := writeWorkflow(t, minimalWorkflow)

	w, err := LoadWorkflow(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Dir != filepath.Dir(path) {
		t.Errorf("Dir = %q, want %q", w.Dir, filepath.Dir(path))
	}
	if w.Search.MaxResults != DefaultMaxResults {
		t.Errorf("Search.MaxResults = %d, want %d", w.Search.MaxResults, DefaultMaxResults)
	}
	if w.Search.Depth != DefaultDepth {
		t.Errorf("Search.Depth = %q, want %q", w.Search.Depth, DefaultDepth)
	}
	if w.Classifier.Model != DefaultModel {
		t.Errorf("Classifier.Model = %q, want %q", w.Classifier.Model, DefaultModel)
	}
	if w.Schedule != DefaultRunAt {
		t.Errorf("Schedule = %q, want %q", w.Schedule, DefaultRunAt)
	}

	harvest := w.Pipeline[1]
	if harvest.Harvest == nil {
		t.Fatal("harvest defaults not applied")
	}
	if harvest.Harvest.Workers != DefaultWorkers {
		t.Errorf("Harvest.Workers = %d, want %d", harvest.Harvest.Workers, DefaultWorkers)
	}
	if harvest.Harvest.Extractor != ExtractorJina {
		t.Errorf("Harvest.Extractor = %q, want %q", harvest.Harvest.Extractor, ExtractorJina)
	}

	compose := w.Pipeline[2]
	if compose.Compose == nil {
		t.Fatal("compose defaults not applied")
	}
	if compose.Compose.Output != DefaultArtifact {
		t.Errorf("Compose.Output = %q, want %q", compose.Compose.Output, DefaultArtifact)
	}
	if compose.Compose.MaxItems != DefaultMaxItems {
		t.Errorf("Compose.MaxItems = %d, want %d", compose.Compose.MaxItems, DefaultMaxItems)
	}
}

func TestLoadWorkflow_MissingFile(t *testing.T) {
	_, err := LoadWorkflow(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadWorkflow_BadYAML(t *testing.T) {
	path := writeWorkflow(t, "feed: [unbalanced")
	if _, err := LoadWorkflow(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadWorkflow_ValidationFailure(t *testing.T) {
	path := writeWorkflow(t, `
feed:
  title: Test
  link: https://example.com
  description: d
pipeline: []
`)
	if _, err := LoadWorkflow(path); err == nil {
		t.Fatal("expected validation error for empty pipeline")
	}
}
