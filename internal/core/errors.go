package core

import "errors"

// Errors returned by Service operations. Parse and vector errors come from
// the table and vecmath packages unchanged.
var (
	// ErrEmptyInput is returned when the submitted CSV text is empty.
	ErrEmptyInput = errors.New("empty input")

	// ErrInputTooLarge is returned when input exceeds the configured limit.
	ErrInputTooLarge = errors.New("input too large")

	// ErrUnknownColumn is returned when a column name is not in the table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrMalformedRequest wraps request bodies that cannot be decoded.
	ErrMalformedRequest = errors.New("malformed request")
)
