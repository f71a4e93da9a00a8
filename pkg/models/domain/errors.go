package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a filter or request invariant violation. It is
// surfaced to the user before any query executes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExportError reports a spreadsheet serialization failure. It is caught at
// the export boundary and shown as a failure message without aborting the
// rest of the page.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export: %v", e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
