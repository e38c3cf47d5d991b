package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when the source has a header but no data rows
	ErrEmptyDataset = errors.New("dataset has no data rows")

	// ErrMissingColumn is returned when a required column is absent from the header
	ErrMissingColumn = errors.New("required column missing")

	// ErrInvalidFoodCode is returned when a food code cell is not an integer
	ErrInvalidFoodCode = errors.New("invalid food code")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUnknownSink is returned for an unsupported snapshot sink
	ErrUnknownSink = errors.New("unknown snapshot sink")
)

// LoadError means the dataset could not be turned into records. It aborts the pipeline.
type LoadError struct {
	Source string
	Line   int // 1-based source line, 0 when not tied to a row
	Err    error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// UnknownColumnError rejects a ranking request keyed on a column the table does not have.
type UnknownColumnError struct {
	Column      string
	Suggestions []string // similar rankable columns, best first; may be empty
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown nutrient column %q", e.Column)
}

// RangeError rejects a ranking request whose count is outside [Min, Max].
type RangeError struct {
	N   int
	Min int
	Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("number of foods must be between %d and %d, got %d", e.Min, e.Max, e.N)
}
