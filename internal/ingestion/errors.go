package ingestion

import "fmt"

// UnsupportedFormatError is returned for file types that need a document parser (PDF, DOCX).
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s: convert to .txt, .md or .html first", e.Extension, e.Path)
}

// HTMLParseError represents an error converting HTML into text.
type HTMLParseError struct {
	Message string
	Cause   error
}

func (e *HTMLParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("html parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("html parse error: %s", e.Message)
}

func (e *HTMLParseError) Unwrap() error {
	return e.Cause
}
