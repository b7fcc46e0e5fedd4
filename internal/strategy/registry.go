package strategy

import (
	"fmt"
	"sort"

	"github.com/jonathan/deck-generator/internal/types"
)

// Registry is the fixed strategy catalog. It is built once at process start
// and read-only thereafter, so it is safe for concurrent use by any number
// of in-flight pipeline invocations.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds the complete strategy table
func NewRegistry() *Registry {
	defs := []*definition{
		{
			id:              IDStandard,
			titleBackground: "#FFFFFF",
			titleTextColor:  "#1A1A1A",
		},
		{
			id:              IDBusiness,
			titleBackground: "#F5F7FA",
			titleTextColor:  "#1F2933",
			postProcess: func(doc *types.Document) {
				for i := range doc.Slides {
					doc.Slides[i].SetLayerColor("#1F2933")
				}
			},
		},
		{
			id:              IDAcademic,
			titleBackground: "#FFFFFF",
			titleTextColor:  "#102A43",
			pageNumbers:     true,
		},
		{
			id:              IDTechnical,
			titleBackground: "#F8FAFC",
			titleTextColor:  "#0B3D4C",
			postProcess: func(doc *types.Document) {
				for i := range doc.Slides {
					if doc.Slides[i].Background == types.DefaultBackground {
						doc.Slides[i].SetBackground("#F8FAFC")
					}
				}
			},
		},
		{
			id:              IDCreative,
			titleBackground: "#2D1B4E",
			titleTextColor:  "#FFFFFF",
			postProcess:     applyCreativePalette,
		},
		{
			id:              IDStorytelling,
			titleBackground: "#FFF8F0",
			titleTextColor:  "#3B2F2F",
			postProcess: func(doc *types.Document) {
				for i := range doc.Slides {
					if doc.Slides[i].Background == types.DefaultBackground {
						doc.Slides[i].SetBackground("#FFF8F0")
					}
				}
			},
		},
	}

	strategies := make(map[string]Strategy, len(defs))
	for _, def := range defs {
		strategies[def.id] = def
	}
	return &Registry{strategies: strategies}
}

// Get returns the strategy with the given id
func (r *Registry) Get(id string) (Strategy, bool) {
	s, ok := r.strategies[id]
	return s, ok
}

// MustGet returns the strategy with the given id, panicking if unknown.
// An unknown id reaching this point is a programmer error.
func (r *Registry) MustGet(id string) Strategy {
	s, ok := r.strategies[id]
	if !ok {
		panic(fmt.Sprintf("unknown strategy id: %s", id))
	}
	return s
}

// Default returns the fallback strategy
func (r *Registry) Default() Strategy {
	return r.strategies[IDStandard]
}

// IDs returns all registered strategy ids in sorted order
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.strategies))
	for id := range r.strategies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// addPageNumbers appends a small page-number footer layer to each slide
func addPageNumbers(doc *types.Document) {
	for i := range doc.Slides {
		doc.Slides[i].AddTextLayer(fmt.Sprintf("%d", i+1), 93, 92, 5, 6, 10)
	}
}

// creativePalette cycles vivid backgrounds across slides that kept the default
var creativePalette = []string{"#2D1B4E", "#0F3057", "#6A0572", "#1B4332"}

func applyCreativePalette(doc *types.Document) {
	for i := range doc.Slides {
		slide := &doc.Slides[i]
		if slide.Background == types.DefaultBackground {
			slide.SetBackground(creativePalette[i%len(creativePalette)])
			slide.SetLayerColor("#FFFFFF")
		}
	}
}
