package vfs

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes operation failures for transport mapping.
type ErrorKind int

const (
	// KindNotFound means the resolved path or a required ancestor is missing.
	KindNotFound ErrorKind = iota

	// KindConflict means the destination already exists where uniqueness is required.
	KindConflict

	// KindContainment means the resolved path would escape the sandbox root.
	KindContainment

	// KindBadRequest means the operation is unsupported for the target.
	KindBadRequest

	// KindIO covers underlying filesystem failures (permissions, disk full).
	KindIO
)

// Error is the failure type returned by all sandbox operations.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFoundf builds a NotFound error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf builds a Conflict error.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Containmentf builds a containment violation error.
func Containmentf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindContainment, Msg: fmt.Sprintf(format, args...)}
}

// BadRequestf builds a BadRequest error.
func BadRequestf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindBadRequest, Msg: fmt.Sprintf(format, args...)}
}

// IOf wraps an underlying filesystem error.
func IOf(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindIO, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the error kind, defaulting to KindIO for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindIO
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
