package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile  Phase = "compile"  // schema to Go type binding
	PhaseEncode   Phase = "encode"   // Go to OER
	PhaseDecode   Phase = "decode"   // OER to Go
	PhaseValidate Phase = "validate" // schema validation
	PhaseGuest    Phase = "guest"    // guest linear memory access
)

// Kind categorizes the error
type Kind string

const (
	KindBufferTooSmall Kind = "buffer_too_small"
	KindOutOfData      Kind = "out_of_data"
	KindBadChoice      Kind = "bad_choice"
	KindBadLength      Kind = "bad_length"
	KindTypeMismatch   Kind = "type_mismatch"
	KindInvalidData    Kind = "invalid_data"
	KindUnsupported    Kind = "unsupported"
	KindFieldMissing   Kind = "field_missing"
	KindFieldUnknown   Kind = "field_unknown"
	KindOverflow       Kind = "overflow"
	KindNilPointer     Kind = "nil_pointer"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindInvalidInput   Kind = "invalid_input"
	KindNotFound       Kind = "not_found"
)

// Numeric codes reported as negated byte counts by the codec entry points.
// The values match the errno-style codes of the generated C codecs.
const (
	CodeBufferTooSmall = 12
	CodeInvalid        = 22
	CodeBadChoice      = 280
	CodeBadLength      = 281
	CodeOutOfData      = 282
)

var kindCodes = map[Kind]int{
	KindBufferTooSmall: CodeBufferTooSmall,
	KindOutOfData:      CodeOutOfData,
	KindBadChoice:      CodeBadChoice,
	KindBadLength:      CodeBadLength,
}

// KindForCode maps a numeric code back to its kind.
func KindForCode(code int) Kind {
	for k, c := range kindCodes {
		if c == code {
			return k
		}
	}
	return KindInvalidData
}

// Error is the structured error type used throughout the module
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	GoType     string
	SchemaType string
	Detail     string
	Path       []string
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

	if e.GoType != "" || e.SchemaType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.SchemaType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", schema type ")
			b.WriteString(e.SchemaType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("schema type ")
			b.WriteString(e.SchemaType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.SchemaType != "" {
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Code returns the numeric code for the error kind. Kinds without a wire
// meaning (schema and binding problems) report CodeInvalid.
func (e *Error) Code() int {
	if c, ok := kindCodes[e.Kind]; ok {
		return c
	}
	return CodeInvalid
}

// Prefix prepends path segments. Walkers call it while unwinding so the
// path is only built on the error path.
func (e *Error) Prefix(segs ...string) *Error {
	if len(segs) == 0 {
		return e
	}
	path := make([]string, 0, len(segs)+len(e.Path))
	path = append(path, segs...)
	e.Path = append(path, e.Path...)
	return e
}

// CodeOf returns the numeric code carried by err, or 0 for nil.
// Errors from outside this package report CodeInvalid.
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code()
	}
	return CodeInvalid
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

// SchemaType sets the schema type name
func (b *Builder) SchemaType(t string) *Builder {
	b.err.SchemaType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// Wire error constructors

// BufferTooSmall reports an exhausted encode destination
func BufferTooSmall(pos, need, capacity int) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindBufferTooSmall,
		Detail: fmt.Sprintf("need %d bytes at offset %d, capacity %d", need, pos, capacity),
	}
}

// OutOfData reports an exhausted decode source
func OutOfData(pos, need, length int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOutOfData,
		Detail: fmt.Sprintf("need %d bytes at offset %d, source length %d", need, pos, length),
	}
}

// BadChoice reports an unrecognized choice tag (decode) or selector (encode)
func BadChoice(phase Phase, path []string, detail string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadChoice,
		Path:   path,
		Detail: detail,
		Value:  value,
	}
}

// BadLength reports a sequence-of count above the schema maximum
func BadLength(phase Phase, path []string, count, maxCount int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadLength,
		Path:   path,
		Detail: fmt.Sprintf("count %d exceeds maximum %d", count, maxCount),
		Value:  count,
	}
}

// Binding and schema constructors

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, schemaType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		GoType:     goType,
		SchemaType: schemaType,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", fieldName),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindOverflow,
		Path:       path,
		SchemaType: targetType,
		Detail:     fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:      value,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, offset, length, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("range [%d, %d) outside memory of %d bytes", offset, uint64(offset)+uint64(length), size),
		Value:  offset,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
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

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
