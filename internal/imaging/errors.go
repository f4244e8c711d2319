package imaging

import (
	"fmt"
)

// Kind classifies a failure at the backend boundary.
//
// Kind values implement error so they can be used as targets for errors.Is:
//
//	if errors.Is(err, imaging.ErrInvalidRegion) { ... }
type Kind int

const (
	// ErrFormatUnrecognized means neither the content signature nor the
	// file extension identifies a supported format.
	ErrFormatUnrecognized Kind = iota + 1

	// ErrFormatUnspecified means a stream encode was attempted without an
	// explicit format.
	ErrFormatUnspecified

	// ErrUnsupportedOperation means the format or backend cannot perform the
	// requested capability (encode at this bit depth, encode a decode-only
	// format, palette access on a true-color image).
	ErrUnsupportedOperation

	// ErrEmptyImage means the operation was called on an image without a buffer.
	ErrEmptyImage

	// ErrInvalidRegion means a rectangle or coordinate is degenerate or out of bounds.
	ErrInvalidRegion

	// ErrIO means an underlying file or stream read or write failed.
	ErrIO

	// ErrInvalidArgument means a parameter value is malformed.
	ErrInvalidArgument
)

var kindNames = map[Kind]string{
	ErrFormatUnrecognized:   "format unrecognized",
	ErrFormatUnspecified:    "format unspecified",
	ErrUnsupportedOperation: "unsupported operation",
	ErrEmptyImage:           "empty image",
	ErrInvalidRegion:        "invalid region",
	ErrIO:                   "i/o failure",
	ErrInvalidArgument:      "invalid argument",
}

func (k Kind) Error() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the error type returned by every fallible operation in this package.
type Error struct {
	// Op is the operation that failed, e.g. "load", "clip", "save".
	Op string

	// Kind is the failure class.
	Kind Kind

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func newError(op string, kind Kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}
