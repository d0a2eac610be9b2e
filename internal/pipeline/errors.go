package pipeline

import (
	"errors"
	"fmt"
)

// ErrEmbedderUnavailable is returned by operations that need embeddings when the Matcher
// was built without an embedder (typically because no API key is configured).
var ErrEmbedderUnavailable = errors.New("embedding provider not configured: set GEMINI_API_KEY")

// MissingResumeTextError is returned when a stored resume has no text to match.
type MissingResumeTextError struct {
	ResumeID string
}

func (e *MissingResumeTextError) Error() string {
	return fmt.Sprintf("resume %s has no text: re-upload the resume to parse it again", e.ResumeID)
}

// StepError records which pipeline step failed.
type StepError struct {
	Step  string
	Cause error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Cause)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}
