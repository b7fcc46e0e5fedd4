package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AutoSlideCount requests that the Classifier's suggested slide count be used
const AutoSlideCount = 0

// GenerationRequest describes one deck generation job.
// Immutable once accepted by the pipeline.
type GenerationRequest struct {
	Topic string `json:"topic" validate:"required,min=2,max=2000"`

	// StrategyID optionally forces a generation strategy; must name a
	// registered strategy when set.
	StrategyID string `json:"strategy_id,omitempty" validate:"omitempty,alphanum"`

	// Purpose and Theme are free-text hints passed through to prompts
	Purpose string `json:"purpose,omitempty" validate:"max=500"`
	Theme   string `json:"theme,omitempty" validate:"max=200"`

	// SlideCount is the requested number of content slides;
	// AutoSlideCount defers to the classification.
	SlideCount int `json:"slide_count,omitempty" validate:"min=0,max=40"`

	IncludeImages    bool             `json:"include_images,omitempty"`
	ImageConsistency ConsistencyLevel `json:"image_consistency,omitempty" validate:"omitempty,oneof=loose medium strict"`
}

var requestValidator = validator.New()

// Validate checks the request against its declared constraints
func (r *GenerationRequest) Validate() error {
	if err := requestValidator.Struct(r); err != nil {
		return fmt.Errorf("invalid generation request: %w", err)
	}
	return nil
}
