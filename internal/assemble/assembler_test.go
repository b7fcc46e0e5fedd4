package assemble

import (
	"testing"

	"github.com/jonathan/deck-generator/internal/strategy"
	"github.com/jonathan/deck-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_PrependsTitleSlideAndRenumbers(t *testing.T) {
	doc := &types.Document{
		Title:  "Tidal Power",
		Slides: []types.Slide{{Title: "How it works"}, {Title: "Economics"}},
	}
	req := &types.GenerationRequest{Topic: "tidal power"}
	strat := strategy.NewRegistry().Default()
	record := types.NewPipelineRecord(req.Topic)

	New().Assemble(doc, req, strat, nil, record)

	require.Len(t, doc.Slides, 3)
	assert.Equal(t, "Tidal Power", doc.Slides[0].Title)
	assert.Equal(t, "How it works", doc.Slides[1].Title)

	for i, slide := range doc.Slides {
		assert.Equal(t, types.SlideID(i), slide.ID)
		for j, layer := range slide.Layers {
			assert.Equal(t, types.LayerID(i, j), layer.ID)
		}
	}
}

func TestAssemble_TopicFillsMissingTitle(t *testing.T) {
	doc := &types.Document{Slides: []types.Slide{{Title: "Body"}}}
	req := &types.GenerationRequest{Topic: "Fermentation"}
	strat := strategy.NewRegistry().Default()

	New().Assemble(doc, req, strat, nil, nil)

	assert.Equal(t, "Fermentation", doc.Title)
	assert.Equal(t, "Fermentation", doc.Slides[0].Title)
}

func TestAssemble_StampsMetadata(t *testing.T) {
	doc := &types.Document{Title: "T", Slides: []types.Slide{{Title: "A"}}}
	req := &types.GenerationRequest{Topic: "t"}
	strat := strategy.NewRegistry().MustGet(strategy.IDBusiness)
	cls := &types.ClassificationResult{Category: types.CategoryBusiness, Confidence: 0.87}
	record := types.NewPipelineRecord("t")
	record.AddRecoveryAction(2, "repaired", "")
	record.EnhancedSlides = 3

	New().Assemble(doc, req, strat, cls, record)

	require.NotNil(t, doc.Metadata)
	assert.Equal(t, strategy.IDBusiness, doc.Metadata.StrategyID)
	assert.Equal(t, "business", doc.Metadata.Category)
	assert.InDelta(t, 0.87, doc.Metadata.Confidence, 1e-9)
	assert.Equal(t, 2, doc.Metadata.RecoveryLevel)
	assert.Equal(t, 3, doc.Metadata.EnhancedSlides)
	assert.False(t, doc.Metadata.GeneratedAt.IsZero())
}

func TestAssemble_DescriptionBecomesSubtitle(t *testing.T) {
	doc := &types.Document{
		Title:       "T",
		Description: "a short tour",
		Slides:      []types.Slide{{Title: "A"}},
	}
	req := &types.GenerationRequest{Topic: "t"}
	strat := strategy.NewRegistry().Default()

	New().Assemble(doc, req, strat, nil, nil)

	require.NotEmpty(t, doc.Slides[0].Layers)
	contents := []string{}
	for _, l := range doc.Slides[0].Layers {
		contents = append(contents, l.Content)
	}
	assert.Contains(t, contents, "a short tour")
}
