// Package recovery turns raw generator output into a renderable document,
// no matter how damaged the output is. It degrades through four levels,
// each less faithful to the original output than the last, and level four
// cannot fail.
package recovery

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/jonathan/deck-generator/internal/llm"
	"github.com/jonathan/deck-generator/internal/schemas"
	"github.com/jonathan/deck-generator/internal/types"
)

// Recovery levels, from full fidelity to full fabrication.
const (
	LevelDirect    = 1
	LevelRepair    = 2
	LevelExtract   = 3
	LevelEmergency = 4
)

// Engine recovers documents from raw model output
type Engine struct{}

// NewEngine creates a recovery engine
func NewEngine() *Engine {
	return &Engine{}
}

// Recover always returns a normalized document. Every attempted level and
// its outcome is appended to the record's recovery trail.
func (e *Engine) Recover(raw string, record *types.PipelineRecord) *types.Document {
	if record == nil {
		record = &types.PipelineRecord{}
	}

	cleaned := llm.CleanJSONBlock(raw)

	if doc, err := parseDocument(cleaned); err == nil {
		record.AddRecoveryAction(LevelDirect, "parsed", "")
		return doc
	} else {
		record.AddRecoveryAction(LevelDirect, "parse_failed", err.Error())
	}

	if doc, detail, err := e.repair(cleaned); err == nil {
		record.AddRecoveryAction(LevelRepair, "repaired", detail)
		return doc
	} else {
		record.AddRecoveryAction(LevelRepair, "repair_failed", err.Error())
	}

	if doc, err := e.extract(raw, record); err == nil {
		record.AddRecoveryAction(LevelExtract, "title_extracted", doc.Title)
		return doc
	} else {
		record.AddRecoveryAction(LevelExtract, "extraction_failed", err.Error())
	}

	record.AddRecoveryAction(LevelEmergency, "emergency_document", "")
	return EmergencyDocument()
}

// repair runs the truncation scan and re-validates the result
func (e *Engine) repair(cleaned string) (*types.Document, string, error) {
	repaired, err := RepairJSON(cleaned)
	if err != nil {
		return nil, "", err
	}
	doc, err := parseDocument(repaired)
	if err != nil {
		return nil, "", fmt.Errorf("repaired text still invalid: %w", err)
	}
	detail := fmt.Sprintf("kept %d of %d bytes", len(repaired), len(cleaned))
	return doc, detail, nil
}

// extract builds a single-slide document around whatever title the raw
// output yields. Extraction works on arbitrary text and a probe tripping
// over hostile input must not take the request down, so panics fall
// through to the emergency level.
func (e *Engine) extract(raw string, record *types.PipelineRecord) (doc *types.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			record.AddRecoveryAction(LevelExtract, "extraction_panicked", fmt.Sprint(r))
			doc = nil
			err = fmt.Errorf("extraction panicked: %v", r)
		}
	}()

	title, err := ExtractTitle(raw)
	if err != nil {
		return nil, err
	}

	slide := types.Slide{Title: title}
	if body := excerpt(raw); body != "" {
		slide.AddTextLayer(body, 10, 35, 80, 55, 18)
	}
	doc = &types.Document{
		Title:  title,
		Slides: []types.Slide{slide},
	}
	doc.Normalize()
	return doc, nil
}

// EmergencyDocument is the fixed last-resort deck. It carries no input
// content so it can never fail to build.
func EmergencyDocument() *types.Document {
	slide := types.Slide{Title: "Generation Incomplete"}
	slide.AddTextLayer("This presentation could not be generated. Please try again.", 10, 40, 80, 20, 24)
	doc := &types.Document{
		Title:  "Presentation",
		Slides: []types.Slide{slide},
	}
	doc.Normalize()
	return doc
}

// parseDocument validates against the document schema and unmarshals.
// Shared by the direct and repair levels.
func parseDocument(jsonContent string) (*types.Document, error) {
	if err := schemas.ValidateDocumentJSON(jsonContent); err != nil {
		return nil, err
	}
	var doc types.Document
	if err := json.Unmarshal([]byte(jsonContent), &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}

const maxExcerptLength = 2000

func excerpt(raw string) string {
	if len(raw) <= maxExcerptLength {
		return raw
	}
	cut := maxExcerptLength
	// never split a multibyte rune
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return raw[:cut]
}
