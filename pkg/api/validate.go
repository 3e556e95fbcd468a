package api

import (
	"fmt"
	"time"
)

var validStepTypes = map[string]bool{
	StepTypeSearch:  true,
	StepTypeHarvest: true,
	StepTypeCompose: true,
	StepTypeStage:   true,
	StepTypePublish: true,
}

var validExtractors = map[string]bool{
	ExtractorJina:  true,
	ExtractorLocal: true,
}

// Validate checks the workflow configuration for errors.
func (w *Workflow) Validate() error {
	if w.Feed.Title == "" {
		return fmt.Errorf("feed.title is required")
	}
	if w.Feed.Link == "" {
		return fmt.Errorf("feed.link is required")
	}
	if w.Feed.Description == "" {
		return fmt.Errorf("feed.description is required")
	}

	if _, err := time.Parse("15:04", w.Schedule); err != nil {
		return fmt.Errorf("schedule %q is not a valid HH:MM time: %w", w.Schedule, err)
	}

	if len(w.Pipeline) == 0 {
		return fmt.Errorf("pipeline has no steps")
	}

	names := make(map[string]int)
	composers := make(map[string]bool)
	haveSearch := false
	haveStage := false

	for i, step := range w.Pipeline {
		if step.Name == "" {
			return fmt.Errorf("step %d: name is required", i)
		}
		if prev, exists := names[step.Name]; exists {
			return fmt.Errorf("step %d: duplicate step name %q (first defined at step %d)", i, step.Name, prev)
		}
		names[step.Name] = i

		if !validStepTypes[step.Type] {
			return fmt.Errorf("step %q: unknown type %q", step.Name, step.Type)
		}

		if err := w.validateStepConfig(step, composers, haveSearch, haveStage); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}

		switch step.Type {
		case StepTypeSearch:
			haveSearch = true
		case StepTypeCompose:
			composers[step.Name] = true
		case StepTypeStage:
			haveStage = true
		}
	}

	return nil
}

func (w *Workflow) validateStepConfig(step StepConfig, composers map[string]bool, haveSearch, haveStage bool) error {
	switch step.Type {
	case StepTypeSearch:
		if len(w.Search.Queries) == 0 {
			return fmt.Errorf("search.queries must list at least one query")
		}
	case StepTypeHarvest:
		if !haveSearch {
			return fmt.Errorf("harvest requires an earlier search step")
		}
		if step.Harvest == nil {
			return fmt.Errorf("harvest config is required")
		}
		if !validExtractors[step.Harvest.Extractor] {
			return fmt.Errorf("harvest.extractor %q is not valid (valid: %s, %s)", step.Harvest.Extractor, ExtractorJina, ExtractorLocal)
		}
	case StepTypeStage:
		return validateStageConfig(step, composers)
	case StepTypePublish:
		return validatePublishConfig(step, haveStage)
	}
	return nil
}

func validateStageConfig(step StepConfig, composers map[string]bool) error {
	if step.Stage == nil {
		return fmt.Errorf("stage config is required")
	}
	if len(step.Stage.Artifacts) == 0 {
		return fmt.Errorf("stage.artifacts must reference at least one compose step")
	}
	for _, ref := range step.Stage.Artifacts {
		if !composers[ref] {
			return fmt.Errorf("stage.artifacts %q does not reference an earlier compose step", ref)
		}
	}
	return nil
}

func validatePublishConfig(step StepConfig, haveStage bool) error {
	if step.Publish == nil {
		return fmt.Errorf("publish config is required")
	}
	if step.Publish.Remote == "" {
		return fmt.Errorf("publish.remote is required")
	}
	if step.Publish.BotName == "" {
		return fmt.Errorf("publish.botName is required")
	}
	if step.Publish.BotEmail == "" {
		return fmt.Errorf("publish.botEmail is required")
	}
	if !haveStage {
		return fmt.Errorf("publish requires an earlier stage step")
	}
	return nil
}
