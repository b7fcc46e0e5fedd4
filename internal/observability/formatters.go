// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/deck-generator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintClassification outputs a human-readable summary of the topic classification.
func (p *Printer) PrintClassification(cls *types.ClassificationResult) {
	if cls == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Category:         %s\n", cls.Category))
	sb.WriteString(fmt.Sprintf("Confidence:       %.2f\n", cls.Confidence))
	sb.WriteString(fmt.Sprintf("Suggested slides: %d\n", cls.SuggestedSlideCount))
	sb.WriteString(fmt.Sprintf("Page numbers:     %t\n", cls.NeedsPageNumbers))
	if cls.ImageConsistency != "" {
		sb.WriteString(fmt.Sprintf("Image style:      %s", cls.ImageConsistency))
	}

	p.printBox("TOPIC CLASSIFICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs a slide-by-slide summary of the assembled document.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:  %s\n", doc.Title))
	sb.WriteString(fmt.Sprintf("Slides: %d\n", len(doc.Slides)))
	if doc.Metadata != nil {
		sb.WriteString(fmt.Sprintf("Strategy: %s\n", doc.Metadata.StrategyID))
		sb.WriteString(fmt.Sprintf("Recovery: level %d\n", doc.Metadata.RecoveryLevel))
	}
	sb.WriteString("\n")

	count := min(len(doc.Slides), maxItemsToShow)
	for i := 0; i < count; i++ {
		slide := doc.Slides[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, slide.Title))
		sb.WriteString(fmt.Sprintf("    Layers: %d", len(slide.Layers)))
		if slide.Enhancement != nil {
			sb.WriteString("  [image]")
		}
		sb.WriteString("\n")
	}
	if len(doc.Slides) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(doc.Slides)-maxItemsToShow))
	}

	p.printBox("ASSEMBLED DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecord outputs the recovery trail of a pipeline run.
func (p *Printer) PrintRecord(record *types.PipelineRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:            %s\n", record.ID))
	sb.WriteString(fmt.Sprintf("Topic:          %s\n", record.Topic))
	sb.WriteString(fmt.Sprintf("Recovery level: %d\n", record.RecoveryLevel))
	if record.EnhancedSlides > 0 {
		sb.WriteString(fmt.Sprintf("Enhanced:       %d slides\n", record.EnhancedSlides))
	}

	if len(record.RecoveryActions) > 0 {
		sb.WriteString("\nRecovery trail:\n")
		for _, action := range record.RecoveryActions {
			line := fmt.Sprintf("  L%d %s", action.Level, action.Action)
			if action.Detail != "" {
				detail := action.Detail
				if len(detail) > 30 {
					detail = detail[:27] + "..."
				}
				line += fmt.Sprintf(" (%s)", detail)
			}
			sb.WriteString(line + "\n")
		}
	}

	p.printBox("PIPELINE RECORD", strings.TrimSuffix(sb.String(), "\n"))
}
