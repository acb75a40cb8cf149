package core

// # Error Codes Reference
//
// User-facing errors carry a code that users can quote to support staff.
// Codes are grouped by category:
//
// # Input Errors (CSV001-CSV099)
//
//	CSV001 - No columns: The first line holds no column names
//	         Action: Start the input with a header line such as "age,weight"
//	CSV002 - Invalid number: A data cell is not a decimal number
//	         Action: Fix the cell named in the details
//	CSV003 - Column count mismatch: A row's cell count differs from the first row
//	         Action: Make every data row as wide as the first one
//	CSV004 - Empty input: Nothing was submitted
//	CSV005 - Input too large: The input exceeds the configured byte limit
//
// # Vector Errors (VEC001-VEC099)
//
//	VEC001 - Length mismatch: Two series have different lengths
//	VEC002 - Canvas too small: Plot size leaves no room inside the margins
//
// # Column Errors (COL001-COL099)
//
//	COL001 - Unknown column: The named column is not in the table
//
// # Analysis Errors (ANL001-ANL099)
//
//	ANL001 - System busy: Every analysis slot stayed occupied for the wait timeout
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	REQ002 - Request timed out
//	REQ003 - Malformed request: The body is not the expected JSON shape
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests from one client
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the server log for the technical
// error, which is logged together with the request ID.
//
// # Matching
//
// Sentinel errors are matched with errors.Is first. Errors that only reach
// this package as text (wrapped by other libraries or read back from a
// response) fall back to a case-insensitive substring match. The first
// match wins.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/pcc/internal/render"
	"github.com/JonMunkholm/pcc/internal/table"
	"github.com/JonMunkholm/pcc/internal/vecmath"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message" yaml:"message"`                   // What happened
	Action  string `json:"action,omitempty" yaml:"action,omitempty"` // What to do about it
	Code    string `json:"code" yaml:"code"`                         // Support reference
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"` // Location info for input errors
}

type errorPattern struct {
	target   error  // matched with errors.Is when set
	pattern  string // lower-case substring fallback
	detailed bool   // copy err.Error() into Detail
	msg      UserMessage
}

var errorPatterns = []errorPattern{
	// Input errors
	{
		target:   table.ErrNoColumns,
		pattern:  "has no columns",
		detailed: true,
		msg: UserMessage{
			Message: "The input has no columns",
			Action:  `Start the input with a header line such as "age,weight"`,
			Code:    "CSV001",
		},
	},
	{
		target:   table.ErrInvalidNumber,
		pattern:  "invalid float literal",
		detailed: true,
		msg: UserMessage{
			Message: "A cell does not contain a valid number",
			Action:  "Fix the cell at the line and column shown in the details",
			Code:    "CSV002",
		},
	},
	{
		target:   table.ErrRowWidthMismatch,
		pattern:  "mismatch in column count",
		detailed: true,
		msg: UserMessage{
			Message: "A row has a different number of cells than the first row",
			Action:  "Make every data row as wide as the first one",
			Code:    "CSV003",
		},
	},
	{
		target:  ErrEmptyInput,
		pattern: "empty input",
		msg: UserMessage{
			Message: "No CSV data was submitted",
			Action:  "Paste or upload CSV text with a header line",
			Code:    "CSV004",
		},
	},
	{
		target:  ErrInputTooLarge,
		pattern: "input too large",
		msg: UserMessage{
			Message: "The input is too large",
			Action:  "Split the data or remove unused columns",
			Code:    "CSV005",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The input is too large",
			Action:  "Split the data or remove unused columns",
			Code:    "CSV005",
		},
	},

	// Vector errors
	{
		target:   vecmath.ErrLengthMismatch,
		pattern:  "same length",
		detailed: true,
		msg: UserMessage{
			Message: "The two series have different lengths",
			Action:  "Provide the same number of values for both series",
			Code:    "VEC001",
		},
	},
	{
		target:   render.ErrCanvasTooSmall,
		pattern:  "canvas too small",
		detailed: true,
		msg: UserMessage{
			Message: "The plot size is too small",
			Action:  "Use a width and height above 100 pixels",
			Code:    "VEC002",
		},
	},

	// Column errors
	{
		target:   ErrUnknownColumn,
		pattern:  "unknown column",
		detailed: true,
		msg: UserMessage{
			Message: "The column does not exist",
			Action:  "Use a name from the header line",
			Code:    "COL001",
		},
	},

	// Analysis errors
	{
		target:  ErrTooManyAnalyses,
		pattern: "too many analyses",
		msg: UserMessage{
			Message: "The system is busy with other analyses",
			Action:  "Please wait a moment and try again",
			Code:    "ANL001",
		},
	},

	// Request errors
	{
		target:  context.Canceled,
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		target:  context.DeadlineExceeded,
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller input or try again later",
			Code:    "REQ002",
		},
	},
	{
		target:   ErrMalformedRequest,
		pattern:  "malformed request",
		detailed: true,
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Check the request body against the API documentation",
			Code:    "REQ003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller input or try again later",
			Code:    "REQ002",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. It returns
// the zero UserMessage for a nil error and the ERR000 fallback when nothing
// matches.
//
// Example:
//
//	_, err := table.Parse("a,b\n1,x\n")
//	msg := MapError(err)
//	// msg.Code == "CSV002"
//	// msg.Detail == "invalid float literal at line 2, column 2: invalid syntax"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, ep := range errorPatterns {
		if ep.target != nil && errors.Is(err, ep.target) {
			return ep.message(err)
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.message(err)
		}
	}

	return defaultMessage
}

func (ep errorPattern) message(err error) UserMessage {
	msg := ep.msg
	if ep.detailed {
		msg.Detail = err.Error()
	}
	return msg
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action", followed by the detail when present.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	s := fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
	if msg.Detail != "" {
		s += ": " + msg.Detail
	}
	return s
}

// IsUserFacing reports whether err maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// StatusCode returns the HTTP status for err's user message code.
func StatusCode(err error) int {
	switch code := MapError(err).Code; {
	case code == "":
		return http.StatusOK
	case code == "CSV005":
		return http.StatusRequestEntityTooLarge
	case code == "ANL001", code == "RATE001":
		return http.StatusTooManyRequests
	case code == "REQ001":
		return 499 // client closed request
	case code == "REQ002":
		return http.StatusGatewayTimeout
	case code == defaultMessage.Code:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// UserError keeps the technical error for logging alongside the message
// shown to users.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
