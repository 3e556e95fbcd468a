package pipeline

import (
	"context"
	"testing"
)

func TestSearchStep_DeduplicatesAcrossQueries(t *testing.T) {
	sc := testContext(t.TempDir())
	sc.Searcher = &fakeSearcher{results: map[string][]string{
		"q1": {"https://example.com/a", "https://example.com/b"},
		"q2": {"https://example.com/b", "https://example.com/c"},
	}}

	step := newSearchStep("collect")
	if err := step.Run(context.Background(), sc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
	if len(sc.State.URLs) != len(want) {
		t.Fatalf("URLs = %v, want %v", sc.State.URLs, want)
	}
	for i := range want {
		if sc.State.URLs[i] != want[i] {
			t.Errorf("URLs[%d] = %q, want %q", i, sc.State.URLs[i], want[i])
		}
	}
}

func TestSearchStep_FailingQueryIsSkipped(t *testing.T) {
	sc := testContext(t.TempDir())
	sc.Searcher = &fakeSearcher{
		results: map[string][]string{"q2": {"https://example.com/c"}},
		fail:    map[string]bool{"q1": true},
	}

	step := newSearchStep("collect")
	if err := step.Run(context.Background(), sc); err != nil {
		t.Fatalf("a failing query must not abort the step: %v", err)
	}
	if len(sc.State.URLs) != 1 || sc.State.URLs[0] != "https://example.com/c" {
		t.Errorf("URLs = %v", sc.State.URLs)
	}
}

func TestSearchStep_NoSearcher(t *testing.T) {
	sc := testContext(t.TempDir())
	step := newSearchStep("collect")
	if err := step.Run(context.Background(), sc); err == nil {
		t.Fatal("expected error without a searcher")
	}
}

func TestSearchStep_CancelledContext(t *testing.T) {
	sc := testContext(t.TempDir())
	sc.Searcher = &fakeSearcher{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	step := newSearchStep("collect")
	if err := step.Run(ctx, sc); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
