// Package pipeline provides the high-level orchestration for deck generation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/deck-generator/internal/assemble"
	"github.com/jonathan/deck-generator/internal/classify"
	"github.com/jonathan/deck-generator/internal/db"
	"github.com/jonathan/deck-generator/internal/enhance"
	"github.com/jonathan/deck-generator/internal/generate"
	"github.com/jonathan/deck-generator/internal/llm"
	"github.com/jonathan/deck-generator/internal/observability"
	"github.com/jonathan/deck-generator/internal/recovery"
	"github.com/jonathan/deck-generator/internal/strategy"
	"github.com/jonathan/deck-generator/internal/types"
)

// Error codes returned to callers. Recovery means generation problems past
// the transport rarely surface as errors; these cover the cases that do.
const (
	CodeInvalidRequest       = "invalid_request"
	CodeClassificationFailed = "classification_failed"
	CodeGenerationFailed     = "generation_failed"
)

// Error is a pipeline failure tagged with a stable code
type Error struct {
	Code  string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for building a Pipeline
type Options struct {
	Database   *db.DB
	Verbose    bool
	OnProgress ProgressCallback
}

// Pipeline wires the generation stages together. Stages are stateless, so a
// single Pipeline is safe for concurrent Run calls.
type Pipeline struct {
	classifier *classify.Classifier
	registry   *strategy.Registry
	generator  *generate.Generator
	recoverer  *recovery.Engine
	enhancer   *enhance.Enhancer
	assembler  *assemble.Assembler
	printer    *observability.Printer

	database   *db.DB
	verbose    bool
	onProgress ProgressCallback
}

// New builds a Pipeline on top of the given LLM client
func New(client llm.Client, opts Options) *Pipeline {
	return &Pipeline{
		classifier: classify.New(client),
		registry:   strategy.NewRegistry(),
		generator:  generate.New(client),
		recoverer:  recovery.NewEngine(),
		enhancer:   enhance.New(),
		assembler:  assemble.New(),
		printer:    observability.NewPrinter(os.Stdout),
		database:   opts.Database,
		verbose:    opts.Verbose,
		onProgress: opts.OnProgress,
	}
}

// emitProgress calls the progress callback if configured
func (p *Pipeline) emitProgress(step, category, message string, content any) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// Run executes the full generation pipeline for one request.
// The returned record is non-nil whenever a document is returned.
func (p *Pipeline) Run(ctx context.Context, req *types.GenerationRequest) (*types.Document, *types.PipelineRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, &Error{Code: CodeInvalidRequest, Cause: err}
	}

	record := types.NewPipelineRecord(req.Topic)
	record.StrategyID = req.StrategyID

	// Step 1: classify the topic
	fmt.Printf("Step 1/5: Classifying topic...\n")
	cls, err := p.classifier.Classify(ctx, req.Topic)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		// An explicit valid strategy makes classification advisory; without
		// one the strategy choice would be a guess, so the run fails.
		if _, ok := p.registry.Get(req.StrategyID); req.StrategyID != "" && ok {
			fmt.Printf("Warning: classification failed (%v), continuing with defaults\n", err)
			cls = types.DefaultClassification()
		} else {
			return nil, nil, &Error{Code: CodeClassificationFailed, Cause: err}
		}
	}
	record.Classification = cls
	if p.verbose {
		p.printer.PrintClassification(cls)
	}
	p.emitProgress(db.StepClassification, db.CategoryClassify,
		fmt.Sprintf("Classified topic as %s", cls.Category), cls)

	// Step 2: select the strategy
	strat := p.registry.Select(req, cls)
	record.StrategyID = strat.ID()
	fmt.Printf("Step 2/5: Using %s strategy...\n", strat.ID())

	// Step 3: generate raw output, retrying once on empty output
	fmt.Printf("Step 3/5: Generating deck content...\n")
	instruction := strat.BuildGenerationPrompt(req, cls)
	raw, err := p.generator.Generate(ctx, instruction)
	if errors.Is(err, generate.ErrEmptyOutput) {
		fmt.Printf("Warning: empty generation output, retrying once...\n")
		raw, err = p.generator.Generate(ctx, instruction)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, &Error{Code: CodeGenerationFailed, Cause: err}
	}
	p.emitProgress(db.StepRawOutput, db.CategoryGenerate,
		fmt.Sprintf("Generated %d bytes of raw output", len(raw)), nil)

	// Step 4: recover a document, whatever the output looks like
	fmt.Printf("Step 4/5: Recovering document structure...\n")
	doc := p.recoverer.Recover(raw, record)
	strat.PostProcess(doc, cls)
	if record.RecoveryLevel > recovery.LevelDirect {
		fmt.Printf("Warning: output needed level %d recovery\n", record.RecoveryLevel)
	}

	if req.IncludeImages {
		enhanced, err := p.enhancer.Enhance(ctx, doc, req, strat, cls)
		if err != nil {
			return nil, nil, err
		}
		record.EnhancedSlides = enhanced
	}

	// Step 5: assemble the final document
	fmt.Printf("Step 5/5: Assembling final document...\n")
	p.assembler.Assemble(doc, req, strat, cls, record)
	record.Complete()
	if p.verbose {
		p.printer.PrintDocument(doc)
		p.printer.PrintRecord(record)
	}
	p.emitProgress(db.StepDocument, db.CategoryAssemble,
		fmt.Sprintf("Assembled document with %d slides", len(doc.Slides)), nil)

	// A cancelled run must not leave partial artifacts behind
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}

	p.persist(ctx, req, raw, doc, record)

	return doc, record, nil
}

// persist writes the run and its artifacts when a database is attached.
// Storage failures are warnings; the document was already produced.
func (p *Pipeline) persist(ctx context.Context, req *types.GenerationRequest, raw string, doc *types.Document, record *types.PipelineRecord) {
	if p.database == nil {
		return
	}

	runID, err := p.database.CreateRun(ctx, req.Topic, record.StrategyID)
	if err != nil {
		fmt.Printf("Warning: failed to create database run: %v\n", err)
		return
	}
	if p.verbose {
		fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
	}

	_ = p.database.SaveArtifact(ctx, runID, db.StepClassification, db.CategoryClassify, record.Classification)
	_ = p.database.SaveTextArtifact(ctx, runID, db.StepRawOutput, db.CategoryGenerate, raw)
	_ = p.database.SaveArtifact(ctx, runID, db.StepDocument, db.CategoryAssemble, doc)
	_ = p.database.SaveArtifact(ctx, runID, db.StepRecord, db.CategoryRecover, record)

	if err := p.database.CompleteRun(ctx, runID, db.StatusCompleted, record.RecoveryLevel); err != nil {
		fmt.Printf("Warning: failed to complete database run: %v\n", err)
	}
}
