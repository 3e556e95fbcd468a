package api

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadWorkflow reads a workflow YAML file, applies defaults, sets
// Dir/FilePath, and validates it.
func LoadWorkflow(filename string) (*Workflow, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading workflow file: %w", err)
	}

	var w Workflow
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing workflow file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	w.FilePath = absPath
	w.Dir = filepath.Dir(absPath)

	w.applyDefaults()

	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("validating workflow %s: %w", filename, err)
	}

	return &w, nil
}

func (w *Workflow) applyDefaults() {
	if w.Search.MaxResults == 0 {
		w.Search.MaxResults = DefaultMaxResults
	}
	if w.Search.Depth == "" {
		w.Search.Depth = DefaultDepth
	}
	if w.Classifier.Model == "" {
		w.Classifier.Model = DefaultModel
	}
	if w.Schedule == "" {
		w.Schedule = DefaultRunAt
	}

	for i := range w.Pipeline {
		step := &w.Pipeline[i]
		switch step.Type {
		case StepTypeHarvest:
			if step.Harvest == nil {
				step.Harvest = &HarvestConfig{}
			}
			if step.Harvest.Workers == 0 {
				step.Harvest.Workers = DefaultWorkers
			}
			if step.Harvest.Extractor == "" {
				step.Harvest.Extractor = ExtractorJina
			}
			if step.Harvest.MinContentLength == 0 {
				step.Harvest.MinContentLength = DefaultMinContent
			}
		case StepTypeCompose:
			if step.Compose == nil {
				step.Compose = &ComposeConfig{}
			}
			if step.Compose.Output == "" {
				step.Compose.Output = DefaultArtifact
			}
			if step.Compose.MaxItems == 0 {
				step.Compose.MaxItems = DefaultMaxItems
			}
		case StepTypeStage:
			if step.Stage == nil {
				continue
			}
			if step.Stage.Dir == "" {
				step.Stage.Dir = DefaultStagingDir
			}
		case StepTypePublish:
			if step.Publish == nil {
				continue
			}
			if step.Publish.Branch == "" {
				step.Publish.Branch = DefaultBranch
			}
			if step.Publish.Message == "" {
				step.Publish.Message = "update feed"
			}
		}
	}
}
