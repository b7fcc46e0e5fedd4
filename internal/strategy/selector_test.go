package strategy

import (
	"testing"

	"github.com/jonathan/deck-generator/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestSelect_ExplicitStrategyWins(t *testing.T) {
	registry := NewRegistry()
	req := &types.GenerationRequest{Topic: "t", StrategyID: IDCreative}
	cls := &types.ClassificationResult{Category: types.CategoryBusiness}

	assert.Equal(t, IDCreative, registry.Select(req, cls).ID())
}

func TestSelect_InvalidExplicitFallsThroughToCategory(t *testing.T) {
	registry := NewRegistry()
	req := &types.GenerationRequest{Topic: "t", StrategyID: "bogus"}
	cls := &types.ClassificationResult{Category: types.CategoryTechnical}

	assert.Equal(t, IDTechnical, registry.Select(req, cls).ID())
}

func TestSelect_CategoryMapping(t *testing.T) {
	registry := NewRegistry()
	tests := []struct {
		category types.Category
		want     string
	}{
		{types.CategoryNarrative, IDStorytelling},
		{types.CategoryBusiness, IDBusiness},
		{types.CategoryAcademic, IDAcademic},
		{types.CategoryTechnical, IDTechnical},
		{types.CategoryCreative, IDCreative},
	}

	for _, tt := range tests {
		cls := &types.ClassificationResult{Category: tt.category}
		got := registry.Select(&types.GenerationRequest{Topic: "t"}, cls)
		assert.Equal(t, tt.want, got.ID(), "category %s", tt.category)
	}
}

func TestSelect_DefaultWhenNothingMatches(t *testing.T) {
	registry := NewRegistry()

	assert.Equal(t, IDStandard, registry.Select(&types.GenerationRequest{Topic: "t"}, nil).ID())
	assert.Equal(t, IDStandard, registry.Select(nil, nil).ID())
	assert.Equal(t, IDStandard, registry.Select(&types.GenerationRequest{Topic: "t"}, &types.ClassificationResult{Category: "unknown"}).ID())
}

func TestSelect_Deterministic(t *testing.T) {
	registry := NewRegistry()
	req := &types.GenerationRequest{Topic: "same topic"}
	cls := &types.ClassificationResult{Category: types.CategoryAcademic, Confidence: 0.4}

	first := registry.Select(req, cls).ID()
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, registry.Select(req, cls).ID())
	}
}

func TestSelect_ConfidenceDoesNotAffectSelection(t *testing.T) {
	registry := NewRegistry()
	req := &types.GenerationRequest{Topic: "same topic"}

	low := registry.Select(req, &types.ClassificationResult{Category: types.CategoryBusiness, Confidence: 0.1})
	high := registry.Select(req, &types.ClassificationResult{Category: types.CategoryBusiness, Confidence: 0.99})

	assert.Equal(t, low.ID(), high.ID())
}
