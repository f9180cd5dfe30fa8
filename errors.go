package qtable

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse is returned when textual input is not a valid value.
	ErrParse = errors.New("malformed complex value")

	// ErrUnrepresentableRadicand is returned when a result needs a radical
	// that a single quadratic surd cannot hold.
	ErrUnrepresentableRadicand = errors.New("unrepresentable radicand")

	// ErrDanglingHandle is returned when a handle no longer designates a live entry.
	ErrDanglingHandle = errors.New("dangling handle")

	// ErrDoubleRelease is returned when a handle is released after its entry
	// reference count already reached zero.
	ErrDoubleRelease = errors.New("double release")

	// ErrZeroDenominator is returned when a value is built with a zero denominator.
	ErrZeroDenominator = errors.New("zero denominator")

	// ErrCoefficientOverflow is returned when a surd coefficient leaves int64.
	ErrCoefficientOverflow = errors.New("surd coefficient overflow")
)

// ParseError describes why a textual value could not be parsed. Err is set
// when the text was well formed but its value could not be built.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q: %s", ErrParse, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// OverflowError is an int64 overflow in surd arithmetic.
type OverflowError struct {
	Op   string
	X, Y int64
}

func (e *OverflowError) Error() string {
	if e.Op == "-" {
		return fmt.Sprintf("%s: -(%d)", ErrCoefficientOverflow, e.Y)
	}
	return fmt.Sprintf("%s: %d%s%d", ErrCoefficientOverflow, e.X, e.Op, e.Y)
}

func (e *OverflowError) Unwrap() error { return ErrCoefficientOverflow }

// RadicandError reports the radicands an operation could not fit into a
// single quadratic surd.
type RadicandError struct {
	Op        string
	Radicands []int64
}

func (e *RadicandError) Error() string {
	parts := make([]string, len(e.Radicands))
	for i, r := range e.Radicands {
		parts[i] = fmt.Sprintf("√%d", r)
	}
	return fmt.Sprintf("%s: %s of %s", ErrUnrepresentableRadicand, e.Op, strings.Join(parts, ", "))
}

func (e *RadicandError) Unwrap() error { return ErrUnrepresentableRadicand }

// HandleError is a lifecycle contract violation on a specific handle.
type HandleError struct {
	Handle Handle
	Op     string
	cause  error
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Handle, e.cause)
}

func (e *HandleError) Unwrap() error { return e.cause }

func danglingHandle(op string, h Handle) error {
	return &HandleError{Handle: h, Op: op, cause: ErrDanglingHandle}
}

func doubleRelease(h Handle) error {
	return &HandleError{Handle: h, Op: "release", cause: ErrDoubleRelease}
}
