package gochart

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrInvalidInput is returned when tabular text cannot be parsed at all.
	ErrInvalidInput = errors.New("invalid tabular input")

	// ErrEmptyResult is returned when parsing yields no valid data rows.
	ErrEmptyResult = errors.New("no valid data rows")

	// ErrIconNotFound is returned when an icon id is not in the repository.
	ErrIconNotFound = errors.New("icon not found")

	// ErrFrameSuperseded is returned when a newer pictogram frame started
	// before this one finished.
	ErrFrameSuperseded = errors.New("frame superseded")

	// ErrUnsupportedKind is returned when an operation does not apply to
	// the active chart kind.
	ErrUnsupportedKind = errors.New("unsupported chart kind")

	// ErrInvalidStyle is returned for unknown style parameters or values.
	ErrInvalidStyle = errors.New("invalid style value")
)

// ParseError reports input that could not be parsed as a whole.
type ParseError struct {
	Reason string
	// SkippedRowCount is the number of non-blank rows discarded with the
	// input. It is 0 when the input has no rows.
	SkippedRowCount int
}

func (e *ParseError) Error() string {
	if e.SkippedRowCount > 0 {
		return fmt.Sprintf("parse tabular input: %s (%d rows skipped)", e.Reason, e.SkippedRowCount)
	}
	return "parse tabular input: " + e.Reason
}

// Is matches ErrInvalidInput.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// EmptyResultError reports that every row was skipped.
type EmptyResultError struct {
	Skipped []SkippedRow
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no valid data rows (%d skipped)", len(e.Skipped))
}

// Is matches ErrEmptyResult.
func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmptyResult
}

// IconDecodeError reports one icon that could not be decoded for a frame.
type IconDecodeError struct {
	IconID string
	Index  int
	Err    error
}

func (e *IconDecodeError) Error() string {
	return fmt.Sprintf("decode icon %q at position %d: %v", e.IconID, e.Index, e.Err)
}

func (e *IconDecodeError) Unwrap() error {
	return e.Err
}

// ValidationError reports rejected manual input for a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
