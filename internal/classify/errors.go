// Package classify turns a free-text topic into categorical generation signals.
package classify

import "fmt"

// ClassificationError represents a failure to classify a topic after all
// retry attempts were exhausted.
type ClassificationError struct {
	Message  string
	Attempts int
	Cause    error
}

func (e *ClassificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("classification error after %d attempts: %s: %v", e.Attempts, e.Message, e.Cause)
	}
	return fmt.Sprintf("classification error: %s", e.Message)
}

func (e *ClassificationError) Unwrap() error {
	return e.Cause
}
