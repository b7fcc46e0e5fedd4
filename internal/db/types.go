package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a generation run record
type Run struct {
	ID            uuid.UUID  `json:"id"`
	Topic         string     `json:"topic"`
	StrategyID    string     `json:"strategy_id,omitempty"`
	Status        string     `json:"status"`
	RecoveryLevel int        `json:"recovery_level"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Run statuses
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact step constants for known artifact types
const (
	StepClassification = "classification"
	StepRawOutput      = "raw_output"
	StepDocument       = "document"
	StepRecord         = "pipeline_record"
	StepSourceText     = "source_text"
)

// Artifact categories group steps by pipeline stage
const (
	CategoryClassify = "classify"
	CategoryGenerate = "generate"
	CategoryRecover  = "recover"
	CategoryAssemble = "assemble"
	CategoryIngest   = "ingest"
)
