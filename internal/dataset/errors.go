// ABOUTME: Error types for dataset loading
// ABOUTME: DataUnavailableError wraps every failure that leaves no usable table
package dataset

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable is matched by every error that prevents a table from loading
var ErrDataUnavailable = errors.New("data unavailable")

// DataUnavailableError describes why a source could not produce a table
type DataUnavailableError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataset %s unavailable: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("dataset %s unavailable: %s", e.Source, e.Reason)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}

func unavailable(source string, err error, format string, args ...any) error {
	return &DataUnavailableError{
		Source: source,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}

// MissingColumnsError is the schema failure reported when required columns are absent
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %v", e.Columns)
}
