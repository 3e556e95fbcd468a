package pipeline

import (
	"fmt"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/api"
)

// NewStep creates a Step implementation from a StepConfig.
func NewStep(cfg api.StepConfig) (Step, error) {
	switch cfg.Type {
	case api.StepTypeSearch:
		return newSearchStep(cfg.Name), nil
	case api.StepTypeHarvest:
		return newHarvestStep(cfg.Name, cfg.Harvest), nil
	case api.StepTypeCompose:
		return newComposeStep(cfg.Name, cfg.Compose), nil
	case api.StepTypeStage:
		return newStageStep(cfg.Name, cfg.Stage), nil
	case api.StepTypePublish:
		return newPublishStep(cfg.Name, cfg.Publish), nil
	default:
		return nil, fmt.Errorf("unknown step type: %s", cfg.Type)
	}
}
