package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConvert  Phase = "convert"  // host value to wire value
	PhaseAccess   Phase = "access"   // wire value to host value
	PhaseLookup   Phase = "lookup"   // field lookup by index, name or ordinal
	PhaseBuild    Phase = "build"    // message construction
	PhaseEncode   Phase = "encode"   // message to bytes
	PhaseDecode   Phase = "decode"   // bytes to message
	PhaseValidate Phase = "validate" // data validation
)

// Kind categorizes the error
type Kind string

const (
	KindNotNumeric                  Kind = "not_numeric"
	KindOverflow                    Kind = "overflow"
	KindSizeMismatch                Kind = "size_mismatch"
	KindUnsupportedOffsetResolution Kind = "unsupported_offset_resolution"
	KindInvalidComponentRange       Kind = "invalid_component_range"
	KindTypeMismatch                Kind = "type_mismatch"
	KindNameTooLong                 Kind = "name_too_long"
	KindNotFound                    Kind = "not_found"
	KindIndexOutOfRange             Kind = "index_out_of_range"
	KindNoInferredType              Kind = "no_inferred_type"
	KindUnsupportedType             Kind = "unsupported_type"
	KindUnsupportedTextWidth        Kind = "unsupported_text_width"
	KindCodecFailure                Kind = "codec_failure"
	KindInvalidUTF8                 Kind = "invalid_utf8"
	KindInvalidInput                Kind = "invalid_input"
)

// Error is the structured error type used throughout the module.
//
// Low and High hold inclusive bounds for range failures. Expected and Actual
// hold the two sides of a mismatch (sizes, wire types).
type Error struct {
	Value    any
	Low      any
	High     any
	Expected any
	Actual   any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	WireType string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.WireType != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.WireType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", wire type ")
			b.WriteString(e.WireType)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("wire type ")
			b.WriteString(e.WireType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.WireType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target with an empty
// Phase matches errors of its Kind in any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && e.Phase != t.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Has reports whether any error in err's chain is an *Error of the given kind.
func Has(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Kind == kind {
		return true
	}
	return e.Cause != nil && Has(e.Cause, kind)
}

// As is errors.As for *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// AtIndex prefixes the path of err with an element index. Errors that are not
// *Error are wrapped.
func AtIndex(phase Phase, err error, index int) error {
	seg := fmt.Sprintf("[%d]", index)
	if e, ok := As(err); ok {
		e.Path = append([]string{seg}, e.Path...)
		return e
	}
	return &Error{Phase: phase, Kind: KindInvalidInput, Path: []string{seg}, Cause: err}
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// WireType sets the wire type name
func (b *Builder) WireType(t string) *Builder {
	b.err.WireType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Bounds sets the inclusive range the value had to fall in
func (b *Builder) Bounds(low, high any) *Builder {
	b.err.Low = low
	b.err.High = high
	return b
}

// Mismatch sets the expected and actual sides of a mismatch
func (b *Builder) Mismatch(expected, actual any) *Builder {
	b.err.Expected = expected
	b.err.Actual = actual
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors, one per kind

// NotNumeric creates an error for a value that cannot be read as a number
func NotNumeric(phase Phase, goType, wireType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindNotNumeric,
		GoType:   goType,
		WireType: wireType,
		Detail:   "value is not numeric",
	}
}

// Overflow creates an overflow error carrying the target's inclusive range
func Overflow(phase Phase, value any, wireType string, low, high int64) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOverflow,
		WireType: wireType,
		Detail:   fmt.Sprintf("value %v overflows %s [%d, %d]", value, wireType, low, high),
		Value:    value,
		Low:      low,
		High:     high,
	}
}

// SizeMismatch creates an error for a fixed-width payload of the wrong length
func SizeMismatch(phase Phase, wireType string, expected, actual int) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindSizeMismatch,
		WireType: wireType,
		Detail:   fmt.Sprintf("expected %d bytes, got %d", expected, actual),
		Expected: expected,
		Actual:   actual,
	}
}

// UnsupportedOffsetResolution creates an error for a time zone offset that is
// not a whole number of quarter hours
func UnsupportedOffsetResolution(phase Phase, offset any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedOffsetResolution,
		Detail: fmt.Sprintf("offset %v is not a multiple of 15 minutes", offset),
		Value:  offset,
	}
}

// InvalidComponentRange creates an error for a date or time component outside
// its inclusive range
func InvalidComponentRange(phase Phase, component string, value, low, high int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidComponentRange,
		Path:   []string{component},
		Detail: fmt.Sprintf("%s %d outside [%d, %d]", component, value, low, high),
		Value:  value,
		Low:    low,
		High:   high,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, expected, actual string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		WireType: expected,
		Detail:   fmt.Sprintf("expected %s, got %s", expected, actual),
		Expected: expected,
		Actual:   actual,
	}
}

// NameTooLong creates an error for a field name over the length limit
func NameTooLong(phase Phase, length, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNameTooLong,
		Detail: fmt.Sprintf("name has %d code points (limit %d)", length, limit),
		Value:  length,
		High:   limit,
	}
}

// NotFound creates a not-found error for a lookup key
func NotFound(phase Phase, what string, key any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("no field with %s %v", what, key),
		Value:  key,
	}
}

// IndexOutOfRange creates an out of range error
func IndexOutOfRange(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIndexOutOfRange,
		Detail: fmt.Sprintf("index %d out of range (length %d)", index, length),
		Value:  index,
		High:   length,
	}
}

// NoInferredType creates an error for a host value with no default wire type
func NoInferredType(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNoInferredType,
		GoType: goType,
		Detail: "no wire type can be inferred",
	}
}

// UnsupportedType creates an error for a wire type with no insertion path
func UnsupportedType(phase Phase, typeID int, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedType,
		Detail: detail,
		Value:  typeID,
	}
}

// UnsupportedTextWidth creates an error for a text width other than 1, 2 or 4
func UnsupportedTextWidth(phase Phase, width int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedTextWidth,
		Detail: fmt.Sprintf("text width %d is not supported", width),
		Value:  width,
	}
}

// CodecFailure wraps a codec status code
func CodecFailure(phase Phase, status fmt.Stringer, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCodecFailure,
		Detail: status.String(),
		Value:  status,
		Cause:  cause,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}
