// Package assemble finalizes a recovered, post-processed document: it adds
// the title slide, renumbers everything, and stamps provenance metadata.
// Assembly is the last stage that mutates the document.
package assemble

import (
	"time"

	"github.com/jonathan/deck-generator/internal/strategy"
	"github.com/jonathan/deck-generator/internal/types"
)

// Assembler produces the final renderable document
type Assembler struct {
	now func() time.Time
}

// New creates an Assembler
func New() *Assembler {
	return &Assembler{now: time.Now}
}

// Assemble prepends the strategy's title slide, normalizes ids and geometry
// across the whole deck, and stamps generation metadata from the record.
func (a *Assembler) Assemble(doc *types.Document, req *types.GenerationRequest, strat strategy.Strategy, cls *types.ClassificationResult, record *types.PipelineRecord) {
	title := doc.Title
	if title == "" {
		title = req.Topic
		doc.Title = title
	}

	titleSlide := strat.TitleSlide(title, doc.Description)
	doc.Slides = append([]types.Slide{titleSlide}, doc.Slides...)
	doc.Normalize()

	meta := &types.GenerationMetadata{
		StrategyID:  strat.ID(),
		GeneratedAt: a.now().UTC(),
	}
	if cls != nil {
		meta.Category = string(cls.Category)
		meta.Confidence = cls.Confidence
	}
	if record != nil {
		meta.RecoveryLevel = record.RecoveryLevel
		meta.EnhancedSlides = record.EnhancedSlides
	}
	doc.Metadata = meta
}
