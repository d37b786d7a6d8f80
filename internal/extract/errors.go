package extract

import "fmt"

// ExtractionError represents a failed AI-assisted extraction. It is
// consumed inside the extractor's fallback path and never reaches the
// pipeline caller.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
