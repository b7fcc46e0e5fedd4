// Package strategy defines the closed catalog of generation strategies.
// A strategy is a stateless policy bundle: it builds the generation
// instruction, post-processes the recovered document, and builds per-slide
// image instructions. Strategies never perform I/O.
package strategy

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/deck-generator/internal/prompts"
	"github.com/jonathan/deck-generator/internal/types"
)

// Strategy ids. The set is closed; there is no runtime registration.
const (
	IDStandard     = "standard"
	IDBusiness     = "business"
	IDAcademic     = "academic"
	IDTechnical    = "technical"
	IDCreative     = "creative"
	IDStorytelling = "storytelling"
)

// DefaultSlideCount is used when neither the request nor the classification
// suggests a slide count.
const DefaultSlideCount = 8

// Strategy customizes instruction text and document post-processing for one
// presentation style. Implementations are pure: same inputs, same outputs.
type Strategy interface {
	// ID returns the stable strategy identifier
	ID() string
	// BuildGenerationPrompt builds the deck-generation instruction
	BuildGenerationPrompt(req *types.GenerationRequest, cls *types.ClassificationResult) string
	// PostProcess applies style-specific adjustments to a recovered document,
	// honoring the classification's auxiliary flags. It must only use the
	// document's narrow mutation API.
	PostProcess(doc *types.Document, cls *types.ClassificationResult)
	// BuildImagePrompt builds the base image instruction for one slide's text
	BuildImagePrompt(slideText string) string
	// TitleSlide synthesizes the deck's title slide
	TitleSlide(docTitle, subtitle string) types.Slide
}

// definition is one row of the strategy table. All strategies share the same
// machinery and differ only in their templates and styling constants.
type definition struct {
	id              string
	titleBackground string
	titleTextColor  string
	// pageNumbers forces page-number footers regardless of classification
	pageNumbers bool
	postProcess func(*types.Document)
}

func (d *definition) ID() string { return d.id }

func (d *definition) BuildGenerationPrompt(req *types.GenerationRequest, cls *types.ClassificationResult) string {
	template := prompts.MustGet(prompts.FileStrategies, "generation-"+d.id)
	format := prompts.MustGet(prompts.FileStrategies, "document-format")

	return prompts.Format(template, map[string]string{
		"Topic":      req.Topic,
		"Hints":      buildHints(req),
		"SlideCount": fmt.Sprintf("%d", ResolveSlideCount(req, cls)),
		"Format":     format,
	})
}

func (d *definition) PostProcess(doc *types.Document, cls *types.ClassificationResult) {
	if d.postProcess != nil {
		d.postProcess(doc)
	}
	if d.pageNumbers || (cls != nil && cls.NeedsPageNumbers) {
		addPageNumbers(doc)
	}
}

func (d *definition) BuildImagePrompt(slideText string) string {
	template := prompts.MustGet(prompts.FileStrategies, "image-"+d.id)
	return prompts.Format(template, map[string]string{
		"SlideText": summarizeForImage(slideText),
	})
}

func (d *definition) TitleSlide(docTitle, subtitle string) types.Slide {
	slide := types.Slide{
		Title:      docTitle,
		Background: d.titleBackground,
	}
	slide.AddTextLayer(docTitle, 10, 30, 80, 25, 44)
	if subtitle != "" {
		slide.AddTextLayer(subtitle, 10, 58, 80, 15, 20)
	}
	slide.SetLayerColor(d.titleTextColor)
	return slide
}

// ResolveSlideCount picks the content slide count: explicit request first,
// then the classifier's suggestion, then the package default.
func ResolveSlideCount(req *types.GenerationRequest, cls *types.ClassificationResult) int {
	if req != nil && req.SlideCount > types.AutoSlideCount {
		return req.SlideCount
	}
	if cls != nil && cls.SuggestedSlideCount > 0 {
		return cls.SuggestedSlideCount
	}
	return DefaultSlideCount
}

// buildHints renders the optional purpose/theme hints as prompt lines
func buildHints(req *types.GenerationRequest) string {
	var sb strings.Builder
	if req.Purpose != "" {
		sb.WriteString(fmt.Sprintf("Purpose: %s\n", req.Purpose))
	}
	if req.Theme != "" {
		sb.WriteString(fmt.Sprintf("Visual theme: %s\n", req.Theme))
	}
	return sb.String()
}

// summarizeForImage truncates slide text to a size image models handle well
const maxImagePromptText = 400

func summarizeForImage(slideText string) string {
	text := strings.TrimSpace(strings.ReplaceAll(slideText, "\n", ". "))
	if len(text) > maxImagePromptText {
		cut := maxImagePromptText
		// never split a multibyte rune
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
