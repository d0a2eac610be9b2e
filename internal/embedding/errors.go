package embedding

import "fmt"

// EmbeddingError represents a failure of the embedding provider.
type EmbeddingError struct {
	Model   string
	Message string
	Cause   error
}

func (e *EmbeddingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding error (%s): %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding error (%s): %s", e.Model, e.Message)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}
