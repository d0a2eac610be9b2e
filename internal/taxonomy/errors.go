package taxonomy

import "fmt"

// InvalidTaxonomyError reports taxonomy data that breaks the canonical-target invariant
// or cannot be parsed.
type InvalidTaxonomyError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidTaxonomyError) Error() string {
	msg := "invalid taxonomy"
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", msg, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", msg, e.Message)
}

func (e *InvalidTaxonomyError) Unwrap() error {
	return e.Cause
}
