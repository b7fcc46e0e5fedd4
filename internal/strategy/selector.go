package strategy

import "github.com/jonathan/deck-generator/internal/types"

// categoryMapping is the deterministic table from content category to
// strategy id. Confidence never influences selection.
var categoryMapping = map[types.Category]string{
	types.CategoryNarrative: IDStorytelling,
	types.CategoryBusiness:  IDBusiness,
	types.CategoryAcademic:  IDAcademic,
	types.CategoryTechnical: IDTechnical,
	types.CategoryCreative:  IDCreative,
}

// Select resolves the strategy for a request. Resolution order, first match
// wins: an explicit valid strategy id on the request, the category mapping,
// then the default strategy. The order is total and side-effect free: the
// same inputs always yield the same strategy.
func (r *Registry) Select(req *types.GenerationRequest, cls *types.ClassificationResult) Strategy {
	if req != nil && req.StrategyID != "" {
		if s, ok := r.Get(req.StrategyID); ok {
			return s
		}
	}

	if cls != nil {
		if id, ok := categoryMapping[cls.Category]; ok {
			return r.MustGet(id)
		}
	}

	return r.Default()
}
