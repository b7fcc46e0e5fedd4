package types

import "strings"

// Category is the content category assigned to a topic by the Classifier
type Category string

// The closed set of content categories. Classifier responses are matched
// case-insensitively against this set; anything else is a failed attempt.
const (
	CategoryNarrative Category = "narrative"
	CategoryBusiness  Category = "business"
	CategoryAcademic  Category = "academic"
	CategoryTechnical Category = "technical"
	CategoryCreative  Category = "creative"
)

// Categories returns all valid content categories
func Categories() []Category {
	return []Category{
		CategoryNarrative,
		CategoryBusiness,
		CategoryAcademic,
		CategoryTechnical,
		CategoryCreative,
	}
}

// ParseCategory matches a raw string against the closed category set,
// ignoring case and surrounding whitespace. Returns false if no match.
func ParseCategory(raw string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, c := range Categories() {
		if string(c) == normalized {
			return c, true
		}
	}
	return "", false
}

// ConsistencyLevel controls how strongly slide images should share a visual style
type ConsistencyLevel string

// Image consistency levels, lowest to highest
const (
	ConsistencyLoose  ConsistencyLevel = "loose"
	ConsistencyMedium ConsistencyLevel = "medium"
	ConsistencyStrict ConsistencyLevel = "strict"
)

// ClassificationResult holds the categorical signals derived from a topic.
// Produced once per request and consumed by the StrategySelector and Enhancer.
type ClassificationResult struct {
	Category            Category         `json:"category"`
	Confidence          float64          `json:"confidence"`
	SuggestedSlideCount int              `json:"suggested_slide_count"`
	NeedsPageNumbers    bool             `json:"needs_page_numbers"`
	ImageConsistency    ConsistencyLevel `json:"image_consistency"`
}

// DefaultClassification returns the fallback classification used when the
// caller decides to proceed despite classifier exhaustion.
func DefaultClassification() *ClassificationResult {
	return &ClassificationResult{
		Category:            CategoryNarrative,
		Confidence:          0,
		SuggestedSlideCount: 8,
		ImageConsistency:    ConsistencyMedium,
	}
}
