package core

// input.go reads CSV text from request bodies and files.
//
// Spreadsheet exports on Windows often start with a UTF-8 byte order mark,
// which would otherwise end up in the first column name. Invalid UTF-8 is
// replaced so header names are always safe to render and serialize.

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxInputBytes is the input limit used when none is configured.
const DefaultMaxInputBytes = 10 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadInput reads all of r as CSV text. It fails with ErrInputTooLarge when
// r holds more than maxBytes bytes (after any byte order mark); maxBytes <= 0
// selects DefaultMaxInputBytes.
func ReadInput(r io.Reader, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxInputBytes
	}

	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	// One extra byte distinguishes "exactly at the limit" from "over it".
	data, err := io.ReadAll(io.LimitReader(br, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrInputTooLarge, maxBytes)
	}

	return strings.ToValidUTF8(string(data), "�"), nil
}

func skipBOM(br *bufio.Reader) error {
	head, err := br.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if bytes.Equal(head, utf8BOM) {
		_, err = br.Discard(len(utf8BOM))
		return err
	}
	return nil
}
