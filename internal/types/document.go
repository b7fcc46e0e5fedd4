// Package types defines the shared data structures for the deck generation pipeline.
package types

import (
	"fmt"
	"strings"
	"time"
)

// LayerType identifies the kind of content a layer holds
type LayerType string

const (
	// LayerText is a positioned text element
	LayerText LayerType = "text"
	// LayerImage is a positioned image element
	LayerImage LayerType = "image"
)

// Default geometry applied to layers that arrive without position data.
// Coordinates are percentages of the slide, so a defaulted layer fills
// most of the slide with a small margin.
const (
	DefaultLayerX      = 5.0
	DefaultLayerY      = 5.0
	DefaultLayerWidth  = 90.0
	DefaultLayerHeight = 90.0
)

// DefaultBackground is the slide background used when none is provided
const DefaultBackground = "#FFFFFF"

// Layer is a single positioned element on a slide.
// Geometry fields are normalized percentages (0-100) of the slide area.
type Layer struct {
	ID     string    `json:"id"`
	Type   LayerType `json:"type"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	ZIndex int       `json:"zIndex"`

	// Text layer fields
	Content   string  `json:"content,omitempty"`
	TextColor string  `json:"textColor,omitempty"`
	FontSize  float64 `json:"fontSize,omitempty"`

	// Image layer fields. Src may be intentionally empty: the image bytes
	// are fetched by a downstream stage from the attached enhancement.
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// Enhancement holds the image-generation instruction attached to a slide
// by the Enhancer, plus provenance for auditing.
type Enhancement struct {
	Prompt           string `json:"prompt"`
	StrategyID       string `json:"strategy_id"`
	Category         string `json:"category"`
	ConsistencyLevel string `json:"consistency_level,omitempty"`
}

// Slide is an ordered collection of layers with slide-level background
type Slide struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Layers      []Layer      `json:"layers"`
	Background  string       `json:"background"`
	Enhancement *Enhancement `json:"enhancement,omitempty"`
}

// GenerationMetadata summarizes how a document was produced.
// Stamped by the Assembler as the last pipeline stage.
type GenerationMetadata struct {
	StrategyID     string    `json:"strategy_id"`
	Category       string    `json:"category,omitempty"`
	Confidence     float64   `json:"confidence"`
	RecoveryLevel  int       `json:"recovery_level"`
	EnhancedSlides int       `json:"enhanced_slides"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Document is the validated, renderable presentation structure
type Document struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Slides      []Slide             `json:"slides"`
	Metadata    *GenerationMetadata `json:"metadata,omitempty"`
}

// Normalize enforces the structural invariants downstream renderers rely on:
// unique ordering-derived ids, geometry always present, backgrounds defaulted,
// layer types constrained to the known set.
// It is idempotent and safe to call after any mutation pass.
func (d *Document) Normalize() {
	for i := range d.Slides {
		slide := &d.Slides[i]
		slide.ID = SlideID(i)
		if slide.Background == "" {
			slide.Background = DefaultBackground
		}
		if slide.Layers == nil {
			slide.Layers = []Layer{}
		}
		for j := range slide.Layers {
			layer := &slide.Layers[j]
			layer.ID = LayerID(i, j)
			if layer.Type != LayerText && layer.Type != LayerImage {
				layer.Type = LayerText
			}
			layer.EnsureGeometry()
			if layer.ZIndex == 0 {
				layer.ZIndex = j + 1
			}
		}
	}
	if d.Slides == nil {
		d.Slides = []Slide{}
	}
}

// SlideID returns the stable id for the slide at the given position
func SlideID(index int) string {
	return fmt.Sprintf("slide-%03d", index+1)
}

// LayerID returns the stable id for a layer within the slide at slideIndex
func LayerID(slideIndex, layerIndex int) string {
	return fmt.Sprintf("slide-%03d-layer-%02d", slideIndex+1, layerIndex+1)
}

// EnsureGeometry fills in missing geometry with defaults and clamps
// values into the normalized 0-100 range.
func (l *Layer) EnsureGeometry() {
	if l.Width <= 0 {
		l.X = DefaultLayerX
		l.Y = DefaultLayerY
		l.Width = DefaultLayerWidth
	}
	if l.Height <= 0 {
		l.Height = DefaultLayerHeight
	}
	l.X = clampPercent(l.X)
	l.Y = clampPercent(l.Y)
	l.Width = clampPercent(l.Width)
	l.Height = clampPercent(l.Height)
}

// SetGeometry sets the layer position within the normalized coordinate space
func (l *Layer) SetGeometry(x, y, width, height float64) {
	l.X = clampPercent(x)
	l.Y = clampPercent(y)
	l.Width = clampPercent(width)
	l.Height = clampPercent(height)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SetBackground sets the slide background color, keeping the default when empty
func (s *Slide) SetBackground(color string) {
	if color == "" {
		color = DefaultBackground
	}
	s.Background = color
}

// SetLayerColor sets the text color on every text layer of the slide
func (s *Slide) SetLayerColor(color string) {
	for i := range s.Layers {
		if s.Layers[i].Type == LayerText {
			s.Layers[i].TextColor = color
		}
	}
}

// AddTextLayer appends a text layer with explicit geometry to the slide
func (s *Slide) AddTextLayer(content string, x, y, width, height float64, fontSize float64) {
	layer := Layer{
		Type:     LayerText,
		Content:  content,
		FontSize: fontSize,
		ZIndex:   len(s.Layers) + 1,
	}
	layer.SetGeometry(x, y, width, height)
	s.Layers = append(s.Layers, layer)
}

// PlainText returns the concatenated text content of the slide's text layers,
// in layer order. Used by the Enhancer to describe the slide to the image model.
func (s *Slide) PlainText() string {
	var parts []string
	if s.Title != "" {
		parts = append(parts, s.Title)
	}
	for _, layer := range s.Layers {
		if layer.Type == LayerText && strings.TrimSpace(layer.Content) != "" {
			parts = append(parts, strings.TrimSpace(layer.Content))
		}
	}
	return strings.Join(parts, "\n")
}
