package table

// errors.go defines the parse failures for CSV input.
//
// A single parse attempt produces at most one of three outcomes:
//   - ErrNoColumns: the input has no header line at all
//   - ErrInvalidNumber: a data field is not a valid float literal
//   - ErrRowWidthMismatch: a data row has a different field count than the header
//
// Callers match the kind with errors.Is against the sentinels, or use errors.As
// to get the *ParseError with its line and column position.

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrNoColumns is returned when the input has no header line.
	ErrNoColumns = errors.New("csv input has no columns")

	// ErrInvalidNumber is returned when a data field fails float parsing.
	ErrInvalidNumber = errors.New("invalid float literal")

	// ErrRowWidthMismatch is returned when a data row's field count differs
	// from the header's.
	ErrRowWidthMismatch = errors.New("mismatch in column count")

	// ErrRaggedRows is returned by New when rows do not share the header's width.
	ErrRaggedRows = errors.New("rows must match header width")
)

// ParseErrorKind identifies which of the parse failures occurred.
type ParseErrorKind int

const (
	NoColumns ParseErrorKind = iota + 1
	InvalidNumber
	RowWidthMismatch
)

func (k ParseErrorKind) String() string {
	switch k {
	case NoColumns:
		return "no_columns"
	case InvalidNumber:
		return "invalid_number"
	case RowWidthMismatch:
		return "row_width_mismatch"
	default:
		return "unknown"
	}
}

// ParseError describes why Parse rejected its input.
//
// Line is the 1-based physical line number, counting the header as line 1.
// Column is the 1-based field position within the row and is only set for
// InvalidNumber.
type ParseError struct {
	Kind   ParseErrorKind
	Line   int
	Column int
	Err    error // underlying strconv error for InvalidNumber
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case NoColumns:
		return ErrNoColumns.Error()
	case InvalidNumber:
		return fmt.Sprintf("%s at line %d, column %d: %s", ErrInvalidNumber, e.Line, e.Column, e.message())
	case RowWidthMismatch:
		return fmt.Sprintf("%s at line %d", ErrRowWidthMismatch, e.Line)
	default:
		return "csv parse error"
	}
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ParseError) Is(target error) bool {
	switch e.Kind {
	case NoColumns:
		return target == ErrNoColumns
	case InvalidNumber:
		return target == ErrInvalidNumber
	case RowWidthMismatch:
		return target == ErrRowWidthMismatch
	}
	return false
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// message returns the underlying parse failure without strconv's
// function and input prefix.
func (e *ParseError) message() string {
	if e.Err == nil {
		return "invalid syntax"
	}
	var numErr *strconv.NumError
	if errors.As(e.Err, &numErr) {
		return numErr.Err.Error()
	}
	return e.Err.Error()
}
