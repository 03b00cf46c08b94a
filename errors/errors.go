package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // plan construction and registration
	PhaseEncode  Phase = "encode"  // Go to wire arguments
	PhaseDecode  Phase = "decode"  // wire reply to Go
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch     Kind = "type_mismatch"
	KindShapeMismatch    Kind = "shape_mismatch"
	KindArityMismatch    Kind = "arity_mismatch"
	KindFieldMissing     Kind = "field_missing"
	KindFieldFailure     Kind = "field_failure"
	KindInvalidUTF8      Kind = "invalid_utf8"
	KindUnknownVariant   Kind = "unknown_variant"
	KindInvalidVariant   Kind = "invalid_variant"
	KindOverflow         Kind = "overflow"
	KindNilPointer       Kind = "nil_pointer"
	KindInvalidData      Kind = "invalid_data"
	KindUnsupported      Kind = "unsupported"
	KindInvalidRule      Kind = "invalid_rule"
	KindInvalidMapping   Kind = "invalid_mapping"
	KindDuplicateMapping Kind = "duplicate_mapping"
	KindRegistration     Kind = "registration"
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	WireKind string
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

	if e.GoType != "" || e.WireKind != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.WireKind != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", wire kind ")
			b.WriteString(e.WireKind)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("wire kind ")
			b.WriteString(e.WireKind)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.WireKind != "" {
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

// WireKind sets the wire value kind name
func (b *Builder) WireKind(k string) *Builder {
	b.err.WireKind = k
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

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, wireKind string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		WireKind: wireKind,
	}
}

// ShapeMismatch creates a shape mismatch error for a value whose wire
// kind cannot satisfy the compiled shape of the destination type
func ShapeMismatch(path []string, goType, wireKind string) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindShapeMismatch,
		Path:     path,
		GoType:   goType,
		WireKind: wireKind,
	}
}

// ArityMismatch creates an arity mismatch error for positional records
func ArityMismatch(path []string, expected, actual int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindArityMismatch,
		Path:   path,
		Detail: fmt.Sprintf("expected %d elements, got %d", expected, actual),
		Value:  actual,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(path []string, fieldName string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// FieldFailure wraps a nested decode failure with the field that caused it
func FieldFailure(path []string, fieldName string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFieldFailure,
		Path:   path,
		Detail: fmt.Sprintf("field %q failed", fieldName),
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

// UnknownVariant creates an error for a token outside the variant set.
// The message lists every valid wire token in declaration order.
func UnknownVariant(path []string, token string, valid []string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownVariant,
		Path:   path,
		Detail: fmt.Sprintf("unknown variant %q (expected one of: %s)", token, strings.Join(valid, ", ")),
		Value:  token,
	}
}

// InvalidOrdinal creates an error for an enum value outside the registered range
func InvalidOrdinal(phase Phase, path []string, ordinal int64, maxValid int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidVariant,
		Path:   path,
		Detail: fmt.Sprintf("ordinal %d out of range (max %d)", ordinal, maxValid),
		Value:  ordinal,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		GoType: targetType,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
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

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported creates an unsupported type class error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidRule creates an error for an unrecognized case rule token.
// The message lists every valid rule token.
func InvalidRule(name string, valid []string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindInvalidRule,
		Detail: fmt.Sprintf("unknown case rule %q (valid: %s)", name, strings.Join(valid, ", ")),
		Value:  name,
	}
}

// InvalidMapping creates an error for a wire name that violates the wire contract
func InvalidMapping(path []string, wireName, reason string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindInvalidMapping,
		Path:   path,
		Detail: fmt.Sprintf("wire name %q %s", wireName, reason),
		Value:  wireName,
	}
}

// DuplicateMapping creates an error for two members resolving to the same wire name
func DuplicateMapping(path []string, wireName, first, second string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindDuplicateMapping,
		Path:   path,
		Detail: fmt.Sprintf("wire name %q claimed by both %s and %s", wireName, first, second),
		Value:  wireName,
	}
}

// Registration creates a registration error
func Registration(goType, detail string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindRegistration,
		GoType: goType,
		Detail: detail,
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

// IsConfiguration reports whether err is a compile-phase configuration error
func IsConfiguration(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Phase == PhaseCompile
	}
	return false
}
