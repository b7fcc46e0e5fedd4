package observability

import (
	"bytes"
	"testing"

	"github.com/jonathan/deck-generator/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintClassification(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	cls := &types.ClassificationResult{
		Category:            types.CategoryTechnical,
		Confidence:          0.91,
		SuggestedSlideCount: 9,
		ImageConsistency:    types.ConsistencyMedium,
	}

	p.PrintClassification(cls)
	output := buf.String()

	assert.Contains(t, output, "TOPIC CLASSIFICATION")
	assert.Contains(t, output, "technical")
	assert.Contains(t, output, "0.91")
	assert.Contains(t, output, "9")
	assert.Contains(t, output, "medium")
}

func TestPrintClassification_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintClassification(nil)

	assert.Empty(t, buf.String())
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.Document{
		Title: "Volcanoes",
		Slides: []types.Slide{
			{Title: "Intro", Enhancement: &types.Enhancement{Prompt: "x"}},
			{Title: "Eruptions"},
		},
		Metadata: &types.GenerationMetadata{StrategyID: "standard", RecoveryLevel: 2},
	}

	p.PrintDocument(doc)
	output := buf.String()

	assert.Contains(t, output, "ASSEMBLED DOCUMENT")
	assert.Contains(t, output, "Volcanoes")
	assert.Contains(t, output, "Intro")
	assert.Contains(t, output, "[image]")
	assert.Contains(t, output, "level 2")
}

func TestPrintDocument_TruncatesLongSlideLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.Document{Title: "T"}
	for i := 0; i < 12; i++ {
		doc.Slides = append(doc.Slides, types.Slide{Title: "S"})
	}

	p.PrintDocument(doc)

	assert.Contains(t, buf.String(), "... and 7 more")
}

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := types.NewPipelineRecord("glaciers")
	record.AddRecoveryAction(1, "parse_failed", "unexpected end of input")
	record.AddRecoveryAction(2, "repaired", "kept 120 of 140 bytes")
	record.EnhancedSlides = 4

	p.PrintRecord(record)
	output := buf.String()

	assert.Contains(t, output, "PIPELINE RECORD")
	assert.Contains(t, output, "glaciers")
	assert.Contains(t, output, "L1 parse_failed")
	assert.Contains(t, output, "L2 repaired")
	assert.Contains(t, output, "4 slides")
}

func TestPrintRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecord(nil)

	assert.Empty(t, buf.String())
}
