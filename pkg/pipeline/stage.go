package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/api"
)

type stageStep struct {
	name string
	cfg  *api.StageConfig
}

func newStageStep(name string, cfg *api.StageConfig) Step {
	return &stageStep{name: name, cfg: cfg}
}

func (s *stageStep) Name() string { return s.name }

// Run recreates the staging directory and copies the referenced artifacts
// plus any extra files matched by the include globs into it. A referenced
// artifact that was never produced fails the step.
func (s *stageStep) Run(ctx context.Context, sc *StepContext) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(sc.WorkDir, s.cfg.Dir)

	// The staging directory is rebuilt from scratch each run.
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("cleaning staging directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}

	staged := 0
	for _, ref := range s.cfg.Artifacts {
		src, ok := sc.State.Artifacts[ref]
		if !ok {
			return fmt.Errorf("artifact from step %q was not produced", ref)
		}
		if err := copyFile(src, filepath.Join(dir, filepath.Base(src))); err != nil {
			return fmt.Errorf("staging artifact from step %q: %w", ref, err)
		}
		staged++
	}

	extra, err := s.stageIncludes(sc.WorkDir, dir)
	if err != nil {
		return err
	}
	staged += extra

	slog.Info("staged files", "step", s.name, "dir", s.cfg.Dir, "count", staged)
	sc.State.StagedDir = dir
	return nil
}

func (s *stageStep) stageIncludes(workDir, dir string) (int, error) {
	if len(s.cfg.Include) == 0 {
		return 0, nil
	}

	fsys := os.DirFS(workDir)
	var matches []string
	for _, pattern := range s.cfg.Include {
		found, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return 0, fmt.Errorf("include glob %q: %w", pattern, err)
		}
		matches = append(matches, found...)
	}
	slices.Sort(matches)
	matches = slices.Compact(matches)

	staged := 0
	for _, rel := range matches {
		// Never copy the staging directory into itself.
		if rel == s.cfg.Dir || strings.HasPrefix(rel, s.cfg.Dir+"/") {
			continue
		}

		info, err := fs.Stat(fsys, rel)
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", rel, err)
		}
		if info.IsDir() {
			continue
		}

		target := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return 0, fmt.Errorf("creating directory for %s: %w", rel, err)
		}
		if err := copyFile(filepath.Join(workDir, rel), target); err != nil {
			return 0, fmt.Errorf("staging %s: %w", rel, err)
		}
		staged++
	}
	return staged, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	if err := os.WriteFile(dst, data, info.Mode()); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
