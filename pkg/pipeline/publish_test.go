package pipeline

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/api"
)

func publishConfig(remote string) *api.PublishConfig {
	return &api.PublishConfig{
		Remote:   remote,
		Branch:   "gh-pages",
		BotName:  "feed-bot",
		BotEmail: "feed-bot@example.com",
		Message:  "update feed",
	}
}

func TestPublishStep_SkipPublish(t *testing.T) {
	sc := testContext(t.TempDir())
	sc.SkipPublish = true

	step := newPublishStep("deploy", publishConfig("https://example.com/repo.git"))
	if err := step.Run(context.Background(), sc); err != nil {
		t.Fatalf("skip must not error: %v", err)
	}
}

func TestPublishStep_NothingStaged(t *testing.T) {
	sc := testContext(t.TempDir())

	step := newPublishStep("deploy", publishConfig("https://example.com/repo.git"))
	if err := step.Run(context.Background(), sc); err == nil {
		t.Fatal("expected error without a staged directory")
	}
}

func TestPublishStep_PushesToRemote(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	sc := testContext(dir)

	remote := filepath.Join(dir, "remote.git")
	if out, err := exec.Command("git", "init", "-q", "--bare", remote).CombinedOutput(); err != nil {
		t.Fatalf("creating bare remote: %v\n%s", err, out)
	}

	staged := filepath.Join(dir, "public")
	if err := os.MkdirAll(staged, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(staged, "feed.xml"), []byte("<rss/>"), 0o600); err != nil {
		t.Fatal(err)
	}
	sc.State.StagedDir = staged

	step := newPublishStep("deploy", publishConfig(remote))
	if err := step.Run(context.Background(), sc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := exec.Command("git", "-C", remote, "ls-tree", "--name-only", "gh-pages").CombinedOutput()
	if err != nil {
		t.Fatalf("inspecting remote: %v\n%s", err, out)
	}
	if string(out) != "feed.xml\n" {
		t.Errorf("remote branch contents = %q, want feed.xml", out)
	}
}
