package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Run executes the workflow's steps sequentially. The first failing step
// aborts the run; later steps never execute.
func Run(ctx context.Context, sc *StepContext) error {
	if sc.Workflow == nil {
		return fmt.Errorf("no workflow configured")
	}
	if sc.State == nil {
		sc.State = NewState()
	}
	if sc.Now == nil {
		sc.Now = time.Now
	}
	if sc.WorkDir == "" {
		sc.WorkDir = sc.Workflow.Dir
	}

	for _, stepCfg := range sc.Workflow.Pipeline {
		step, err := NewStep(stepCfg)
		if err != nil {
			return fmt.Errorf("creating step %q: %w", stepCfg.Name, err)
		}

		slog.Info("running step", "step", stepCfg.Name, "type", stepCfg.Type)
		if err := step.Run(ctx, sc); err != nil {
			return fmt.Errorf("step %q failed: %w", stepCfg.Name, err)
		}
	}

	return nil
}
