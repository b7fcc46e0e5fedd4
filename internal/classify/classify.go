package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/deck-generator/internal/llm"
	"github.com/jonathan/deck-generator/internal/prompts"
	"github.com/jonathan/deck-generator/internal/types"
)

// Retry discipline: a fixed number of attempts with linearly increasing
// delay between them. The classifier itself never guesses from keywords;
// fallback policy belongs to the caller.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 500 * time.Millisecond

	minSlideCount = 3
	maxSlideCount = 20
)

// Classifier labels topics using the text-generation capability
type Classifier struct {
	client      llm.Client
	maxAttempts int
	baseDelay   time.Duration
}

// Option customizes a Classifier
type Option func(*Classifier)

// WithMaxAttempts overrides the retry budget
func WithMaxAttempts(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBaseDelay overrides the backoff base delay
func WithBaseDelay(d time.Duration) Option {
	return func(c *Classifier) {
		if d >= 0 {
			c.baseDelay = d
		}
	}
}

// New creates a Classifier backed by the given LLM client
func New(client llm.Client, opts ...Option) *Classifier {
	c := &Classifier{
		client:      client,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rawClassification mirrors the JSON shape the prompt demands
type rawClassification struct {
	Category            string  `json:"category"`
	Confidence          float64 `json:"confidence"`
	SuggestedSlideCount int     `json:"suggested_slide_count"`
	NeedsPageNumbers    bool    `json:"needs_page_numbers"`
	ImageConsistency    string  `json:"image_consistency"`
}

// Classify derives a ClassificationResult for the topic. It makes at most
// maxAttempts calls to the text capability, sleeping attempt*baseDelay
// between failures, and returns a ClassificationError once exhausted.
func (c *Classifier) Classify(ctx context.Context, topic string) (*types.ClassificationResult, error) {
	template := prompts.MustGet(prompts.FileClassification, "classify-topic")
	prompt := prompts.Format(template, map[string]string{"Topic": topic})

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, time.Duration(attempt-1)*c.baseDelay); err != nil {
				return nil, err
			}
		}

		responseText, err := c.client.GenerateJSON(ctx, prompt, llm.Options{Tier: llm.TierLite})
		if err != nil {
			lastErr = err
			continue
		}

		result, err := parseClassification(responseText)
		if err != nil {
			lastErr = err
			continue
		}

		return result, nil
	}

	return nil, &ClassificationError{
		Message:  "failed to classify topic",
		Attempts: c.maxAttempts,
		Cause:    lastErr,
	}
}

// parseClassification parses and validates one classifier response
func parseClassification(responseText string) (*types.ClassificationResult, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	var raw rawClassification
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classification JSON: %w", err)
	}

	category, ok := types.ParseCategory(raw.Category)
	if !ok {
		return nil, fmt.Errorf("category %q is not in the known set", raw.Category)
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	slideCount := raw.SuggestedSlideCount
	if slideCount < minSlideCount {
		slideCount = minSlideCount
	}
	if slideCount > maxSlideCount {
		slideCount = maxSlideCount
	}

	consistency := types.ConsistencyLevel(raw.ImageConsistency)
	switch consistency {
	case types.ConsistencyLoose, types.ConsistencyMedium, types.ConsistencyStrict:
	default:
		consistency = types.ConsistencyMedium
	}

	return &types.ClassificationResult{
		Category:            category,
		Confidence:          confidence,
		SuggestedSlideCount: slideCount,
		NeedsPageNumbers:    raw.NeedsPageNumbers,
		ImageConsistency:    consistency,
	}, nil
}

// sleepCtx sleeps for d unless the context is cancelled first
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
