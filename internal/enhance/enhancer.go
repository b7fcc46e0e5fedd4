// Package enhance attaches image-generation instructions to slides. It
// never generates images itself; the attached enhancement tells a
// downstream renderer what to generate.
package enhance

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/deck-generator/internal/prompts"
	"github.com/jonathan/deck-generator/internal/strategy"
	"github.com/jonathan/deck-generator/internal/types"
)

// DefaultConcurrency bounds the per-slide fan-out
const DefaultConcurrency = 4

// Enhancer builds per-slide image enhancements
type Enhancer struct {
	concurrency int
}

// Option configures the enhancer
type Option func(*Enhancer)

// WithConcurrency sets the slide fan-out bound
func WithConcurrency(n int) Option {
	return func(e *Enhancer) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// New creates an Enhancer
func New(opts ...Option) *Enhancer {
	e := &Enhancer{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enhance attaches an image enhancement to every slide that carries text,
// using the strategy's image instruction plus the classification's register
// and the requested consistency level. Slides are processed concurrently;
// each slide's enhancement depends only on that slide. Returns the number
// of slides enhanced.
//
// When the request does not ask for images, Enhance is a no-op.
func (e *Enhancer) Enhance(ctx context.Context, doc *types.Document, req *types.GenerationRequest, strat strategy.Strategy, cls *types.ClassificationResult) (int, error) {
	if req == nil || !req.IncludeImages || doc == nil || len(doc.Slides) == 0 {
		return 0, nil
	}

	consistency := resolveConsistency(req, cls)
	suffix := promptSuffix(cls, consistency)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	enhanced := make([]bool, len(doc.Slides))
	for i := range doc.Slides {
		slide := &doc.Slides[i]
		idx := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text := slide.PlainText()
			if strings.TrimSpace(text) == "" {
				return nil
			}
			slide.Enhancement = &types.Enhancement{
				Prompt:           strat.BuildImagePrompt(text) + suffix,
				StrategyID:       strat.ID(),
				Category:         categoryOf(cls),
				ConsistencyLevel: string(consistency),
			}
			enhanced[idx] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	count := 0
	for _, ok := range enhanced {
		if ok {
			count++
		}
	}
	return count, nil
}

// resolveConsistency prefers the request's explicit level, then the
// classification's, then medium.
func resolveConsistency(req *types.GenerationRequest, cls *types.ClassificationResult) types.ConsistencyLevel {
	if req.ImageConsistency != "" {
		return req.ImageConsistency
	}
	if cls != nil && cls.ImageConsistency != "" {
		return cls.ImageConsistency
	}
	return types.ConsistencyMedium
}

func promptSuffix(cls *types.ClassificationResult, consistency types.ConsistencyLevel) string {
	var sb strings.Builder
	if cls != nil && cls.Category != "" {
		context := prompts.MustGet(prompts.FileEnhancement, "category-context")
		sb.WriteString(prompts.Format(context, map[string]string{
			"Category": string(cls.Category),
		}))
	}
	if prompts.Has(prompts.FileEnhancement, "consistency-"+string(consistency)) {
		sb.WriteString(prompts.MustGet(prompts.FileEnhancement, "consistency-"+string(consistency)))
	}
	return sb.String()
}

func categoryOf(cls *types.ClassificationResult) string {
	if cls == nil {
		return ""
	}
	return string(cls.Category)
}
