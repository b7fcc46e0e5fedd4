package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{
		StepClassification,
		StepRawOutput,
		StepDocument,
		StepRecord,
		StepSourceText,
	}

	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
	}
}

func TestRunType(t *testing.T) {
	run := Run{
		Topic:      "solar energy",
		StrategyID: "technical",
		Status:     StatusRunning,
	}

	assert.Equal(t, "solar energy", run.Topic)
	assert.Equal(t, "technical", run.StrategyID)
	assert.Equal(t, "running", run.Status)
	assert.Nil(t, run.CompletedAt)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))

	ptr := nullIfEmpty("value")
	assert.NotNil(t, ptr)
	assert.Equal(t, "value", *ptr)
}
