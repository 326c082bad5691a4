// Package qerr defines the error taxonomy shared by every simulator package.
//
// All errors are detected synchronously at the offending call. Nothing is
// retried: computation is deterministic, so a retry with unchanged inputs
// cannot succeed. A failing call never returns a partial result and never
// modifies the state it was given.
package qerr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code categorizes simulator errors.
type Code string

const (
	// CodeInvalidArgument covers n < 1, out-of-range indices, control == target,
	// unknown gate names and dimension mismatches.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeInvalidState indicates a state vector that violates a precondition,
	// e.g. an unnormalized vector passed to sampling.
	CodeInvalidState Code = "INVALID_STATE"

	// CodeResourceExhausted indicates a requested size above the configured
	// memory budget or the representable qubit limit.
	CodeResourceExhausted Code = "RESOURCE_EXHAUSTED"
)

// Error is the structured error returned by simulator operations.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Op names the failing operation, e.g. "dense.ApplyTwo".
	Op string

	// Message is a human-readable description.
	Message string

	// Details contains additional context (index values, sizes).
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%s", k, e.Details[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

// InvalidArgument creates an INVALID_ARGUMENT error.
func InvalidArgument(op, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidArgument, Op: op, Message: fmt.Sprintf(format, args...)}
}

// InvalidState creates an INVALID_STATE error.
func InvalidState(op, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidState, Op: op, Message: fmt.Sprintf(format, args...)}
}

// ResourceExhausted creates a RESOURCE_EXHAUSTED error.
func ResourceExhausted(op, format string, args ...any) *Error {
	return &Error{Code: CodeResourceExhausted, Op: op, Message: fmt.Sprintf(format, args...)}
}

// With attaches a detail key/value and returns the same error for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = fmt.Sprint(value)
	return e
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ""
}

// IsInvalidArgument reports whether err wraps an INVALID_ARGUMENT error.
func IsInvalidArgument(err error) bool {
	return CodeOf(err) == CodeInvalidArgument
}

// IsInvalidState reports whether err wraps an INVALID_STATE error.
func IsInvalidState(err error) bool {
	return CodeOf(err) == CodeInvalidState
}

// IsResourceExhausted reports whether err wraps a RESOURCE_EXHAUSTED error.
func IsResourceExhausted(err error) bool {
	return CodeOf(err) == CodeResourceExhausted
}

// CheckIndex validates that index lies in [0, n).
func CheckIndex(op string, index, n int) error {
	if index < 0 || index >= n {
		return InvalidArgument(op, "qubit index out of range").With("index", index).With("n", n)
	}
	return nil
}
