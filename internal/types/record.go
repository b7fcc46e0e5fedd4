package types

import (
	"time"

	"github.com/google/uuid"
)

// RecoveryAction records one step the RecoveryEngine took while turning raw
// generator output into a valid document.
type RecoveryAction struct {
	Level  int       `json:"level"`
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// PipelineRecord is the write-once audit trail for a single generation request.
// It is owned by the pipeline for the lifetime of the request and appended to
// by each stage; nothing is ever removed or rewritten.
type PipelineRecord struct {
	ID             uuid.UUID             `json:"id"`
	Topic          string                `json:"topic"`
	StrategyID     string                `json:"strategy_id,omitempty"`
	Classification *ClassificationResult `json:"classification,omitempty"`

	// RecoveryLevel is the highest (least faithful) level the engine reached
	RecoveryLevel   int              `json:"recovery_level"`
	RecoveryActions []RecoveryAction `json:"recovery_actions,omitempty"`

	EnhancedSlides int       `json:"enhanced_slides"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at,omitempty"`
}

// NewPipelineRecord creates a record for one generation request
func NewPipelineRecord(topic string) *PipelineRecord {
	return &PipelineRecord{
		ID:        uuid.New(),
		Topic:     topic,
		StartedAt: time.Now().UTC(),
	}
}

// AddRecoveryAction appends an action to the recovery trail and tracks the
// highest level reached.
func (r *PipelineRecord) AddRecoveryAction(level int, action, detail string) {
	r.RecoveryActions = append(r.RecoveryActions, RecoveryAction{
		Level:  level,
		Action: action,
		Detail: detail,
		At:     time.Now().UTC(),
	})
	if level > r.RecoveryLevel {
		r.RecoveryLevel = level
	}
}

// Complete stamps the completion time
func (r *PipelineRecord) Complete() {
	r.CompletedAt = time.Now().UTC()
}
