package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/api"
)

type publishStep struct {
	name string
	cfg  *api.PublishConfig
}

func newPublishStep(name string, cfg *api.PublishConfig) Step {
	return &publishStep{name: name, cfg: cfg}
}

func (s *publishStep) Name() string { return s.name }

// Run pushes the staged directory's contents to the hosting branch as a
// single commit authored by the configured bot identity. The branch history
// is replaced on every run.
func (s *publishStep) Run(ctx context.Context, sc *StepContext) error {
	if sc.SkipPublish {
		slog.Info("publish skipped", "step", s.name)
		return nil
	}

	if sc.State.StagedDir == "" {
		return fmt.Errorf("no staged directory to publish")
	}

	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git binary not found in PATH: %w", err)
	}

	dir := sc.State.StagedDir
	commands := [][]string{
		{"init", "-q"},
		{"checkout", "-q", "-b", s.cfg.Branch},
		{"config", "user.name", s.cfg.BotName},
		{"config", "user.email", s.cfg.BotEmail},
		{"add", "-A"},
		{"commit", "-q", "-m", s.cfg.Message},
		{"push", "--force", s.cfg.Remote, "HEAD:" + s.cfg.Branch},
	}

	for _, args := range commands {
		if err := runGit(ctx, dir, args...); err != nil {
			return err
		}
	}

	slog.Info("published staged directory", "step", s.name, "branch", s.cfg.Branch)
	return nil
}

func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s failed: %w\nstderr: %s", args[0], err, stderr.String())
	}
	return nil
}
