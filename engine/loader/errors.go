package loader

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes a decode failure so callers can branch on it with errors.Is.
type ErrorKind string

const (
	KindNoFileSelected           ErrorKind = "no_file_selected"
	KindUnsupportedContainer     ErrorKind = "unsupported_container"
	KindTruncatedContainer       ErrorKind = "truncated_container"
	KindMagicMismatch            ErrorKind = "magic_mismatch"
	KindVersionMismatch          ErrorKind = "version_mismatch"
	KindSizeMismatch             ErrorKind = "size_mismatch"
	KindChunkTypeMismatch        ErrorKind = "chunk_type_mismatch"
	KindMissingBufferURI         ErrorKind = "missing_buffer_uri"
	KindInvalidDocument          ErrorKind = "invalid_document"
	KindAccessorOutOfRange       ErrorKind = "accessor_out_of_range"
	KindMissingAccessorField     ErrorKind = "missing_accessor_field"
	KindInvalidAccessorField     ErrorKind = "invalid_accessor_field"
	KindUnknownElementShape      ErrorKind = "unknown_element_shape"
	KindBufferBoundsExceeded     ErrorKind = "buffer_bounds_exceeded"
	KindUnsupportedComponentType ErrorKind = "unsupported_component_type"
	KindReadFailed               ErrorKind = "read_failed"
	KindIndexOverflow            ErrorKind = "index_overflow"
)

// Sentinels for errors.Is. Matching compares Kind only.
var (
	ErrNoFileSelected           = &Error{Kind: KindNoFileSelected}
	ErrUnsupportedContainer     = &Error{Kind: KindUnsupportedContainer}
	ErrTruncatedContainer       = &Error{Kind: KindTruncatedContainer}
	ErrMagicMismatch            = &Error{Kind: KindMagicMismatch}
	ErrVersionMismatch          = &Error{Kind: KindVersionMismatch}
	ErrSizeMismatch             = &Error{Kind: KindSizeMismatch}
	ErrChunkTypeMismatch        = &Error{Kind: KindChunkTypeMismatch}
	ErrMissingBufferURI         = &Error{Kind: KindMissingBufferURI}
	ErrInvalidDocument          = &Error{Kind: KindInvalidDocument}
	ErrAccessorOutOfRange       = &Error{Kind: KindAccessorOutOfRange}
	ErrMissingAccessorField     = &Error{Kind: KindMissingAccessorField}
	ErrInvalidAccessorField     = &Error{Kind: KindInvalidAccessorField}
	ErrUnknownElementShape      = &Error{Kind: KindUnknownElementShape}
	ErrBufferBoundsExceeded     = &Error{Kind: KindBufferBoundsExceeded}
	ErrUnsupportedComponentType = &Error{Kind: KindUnsupportedComponentType}
	ErrReadFailed               = &Error{Kind: KindReadFailed}
	ErrIndexOverflow            = &Error{Kind: KindIndexOverflow}
)

// noAccessor marks an Error that is not tied to a specific accessor.
const noAccessor = -1

// Error is the structured failure returned by every loader operation.
// Only the fields relevant to Kind are populated.
type Error struct {
	Kind ErrorKind

	// Path is the file the failure relates to, when known.
	Path string

	// Field names the header field, accessor property or document key involved.
	Field string

	// Accessor is the accessor index, or -1.
	Accessor int

	// Expected and Actual carry the mismatching values for header checks.
	Expected any
	Actual   any

	// Offset, Length and SegmentLength describe an out-of-range read.
	Offset        int
	Length        int
	SegmentLength int

	Detail string
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Kind))
	if e.Path != "" {
		b.WriteString(" in ")
		b.WriteString(e.Path)
	}
	if e.Accessor >= 0 && e.accessorScoped() {
		fmt.Fprintf(&b, " at accessor %d", e.Accessor)
	}
	if e.Field != "" {
		b.WriteString(": field ")
		b.WriteString(e.Field)
	}

	switch e.Kind {
	case KindMagicMismatch, KindVersionMismatch, KindSizeMismatch, KindChunkTypeMismatch:
		fmt.Fprintf(&b, " (expected %v, got %v)", e.Expected, e.Actual)
	case KindBufferBoundsExceeded:
		fmt.Fprintf(&b, " (offset %d + length %d > segment %d)", e.Offset, e.Length, e.SegmentLength)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

func (e *Error) accessorScoped() bool {
	switch e.Kind {
	case KindAccessorOutOfRange, KindMissingAccessorField, KindInvalidAccessorField,
		KindUnknownElementShape, KindBufferBoundsExceeded, KindUnsupportedComponentType,
		KindIndexOverflow:
		return true
	}
	return false
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Fatal reports whether the failure aborts a decode.
// KindUnsupportedComponentType is the only per-entity condition; whether it aborts is decided by ComponentTypePolicy.
func (e *Error) Fatal() bool {
	return e.Kind != KindUnsupportedComponentType
}

func newError(kind ErrorKind) *Error {
	return &Error{Kind: kind, Accessor: noAccessor}
}

func mismatch(kind ErrorKind, field string, expected, actual any) *Error {
	e := newError(kind)
	e.Field = field
	e.Expected = expected
	e.Actual = actual
	return e
}

func accessorError(kind ErrorKind, accessor int, field string) *Error {
	e := newError(kind)
	e.Accessor = accessor
	e.Field = field
	return e
}

func boundsError(accessor, offset, length, segment int) *Error {
	e := newError(KindBufferBoundsExceeded)
	e.Accessor = accessor
	e.Offset = offset
	e.Length = length
	e.SegmentLength = segment
	return e
}

func (e *Error) withPath(path string) *Error {
	if e.Path == "" {
		e.Path = path
	}
	return e
}

func (e *Error) withDetail(format string, args ...any) *Error {
	if len(args) > 0 {
		e.Detail = fmt.Sprintf(format, args...)
	} else {
		e.Detail = format
	}
	return e
}

func (e *Error) withCause(err error) *Error {
	e.Cause = err
	return e
}
