package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse     Phase = "parse"     // bytes to record
	PhaseBuild     Phase = "build"     // builder to record
	PhaseSerialize Phase = "serialize" // record to bytes
	PhaseDeclare   Phase = "declare"   // codec/packet declaration
)

// Kind categorizes the error. The set is closed.
type Kind string

const (
	KindInvalidPacket         Kind = "invalid_packet"
	KindConstraintOutOfBounds Kind = "constraint_out_of_bounds"
	KindInvalidLength         Kind = "invalid_length"
	KindInvalidArraySize      Kind = "invalid_array_size"
	KindImpossibleStruct      Kind = "impossible_struct"
	KindInvalidEnumValue      Kind = "invalid_enum_value"
)

// Sentinels for errors.Is. They carry only a Kind, so they match an error of
// that kind in any phase.
var (
	ErrInvalidPacket         = &Error{Kind: KindInvalidPacket}
	ErrConstraintOutOfBounds = &Error{Kind: KindConstraintOutOfBounds}
	ErrInvalidLength         = &Error{Kind: KindInvalidLength}
	ErrInvalidArraySize      = &Error{Kind: KindInvalidArraySize}
	ErrImpossibleStruct      = &Error{Kind: KindImpossibleStruct}
	ErrInvalidEnumValue      = &Error{Kind: KindInvalidEnumValue}
)

// Error is the structured error returned by every codec operation.
//
// Wanted and Got are byte counts whose meaning depends on Kind:
//   - invalid_length: bytes the field needs / bytes remaining
//   - invalid_packet: bytes consumed / buffer length
//   - invalid_array_size: element size / array size
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Obj    string
	Field  string
	Type   string
	Detail string
	Wanted int
	Got    int
}

// Path returns "obj.field", or whichever half is set.
func (e *Error) Path() string {
	switch {
	case e.Obj != "" && e.Field != "":
		return e.Obj + "." + e.Field
	case e.Obj != "":
		return e.Obj
	default:
		return e.Field
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if p := e.Path(); p != "" {
		b.WriteString(" at ")
		b.WriteString(p)
	}

	if msg := e.message(); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

func (e *Error) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	switch e.Kind {
	case KindInvalidPacket:
		if e.Got > e.Wanted {
			return fmt.Sprintf("packet parsing failed, %d trailing byte(s)", e.Got-e.Wanted)
		}
		return "packet parsing failed"
	case KindConstraintOutOfBounds:
		return fmt.Sprintf("%s was %#x, which is not known", e.Field, e.Value)
	case KindInvalidLength:
		return fmt.Sprintf("needed length of %d but got %d", e.Wanted, e.Got)
	case KindInvalidArraySize:
		return fmt.Sprintf("array size (%d bytes) is not a multiple of the element size (%d bytes)", e.Got, e.Wanted)
	case KindImpossibleStruct:
		return "due to size restrictions a struct could not be parsed"
	case KindInvalidEnumValue:
		return fmt.Sprintf("%v is not a valid %s value", e.Value, e.Type)
	}
	return ""
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Kinds must be equal; the
// phase is only compared when the target names one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Phase == "" || e.Phase == t.Phase
}

// As extracts the structured error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
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

// Obj sets the packet or struct name
func (b *Builder) Obj(name string) *Builder {
	b.err.Obj = name
	return b
}

// Field sets the field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Type sets the declared type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Lengths sets the wanted and actual byte counts
func (b *Builder) Lengths(wanted, got int) *Builder {
	b.err.Wanted = wanted
	b.err.Got = got
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
	e := b.err
	return &e
}

// Convenience constructors, one per kind

// InvalidPacket reports trailing bytes after a top-level parse.
func InvalidPacket(obj string, consumed, total int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidPacket,
		Obj:    obj,
		Wanted: consumed,
		Got:    total,
	}
}

// ConstraintOutOfBounds reports a value outside a field's declared range.
func ConstraintOutOfBounds(phase Phase, obj, field string, value uint64) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindConstraintOutOfBounds,
		Obj:   obj,
		Field: field,
		Value: value,
	}
}

// InvalidLength reports a buffer shorter than the field requires.
func InvalidLength(obj string, wanted, got int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidLength,
		Obj:    obj,
		Wanted: wanted,
		Got:    got,
	}
}

// InvalidArraySize reports an array byte length that is not a multiple of
// its element size.
func InvalidArraySize(obj, field string, array, element int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidArraySize,
		Obj:    obj,
		Field:  field,
		Wanted: element,
		Got:    array,
	}
}

// ImpossibleStruct reports a layout no byte length can satisfy.
func ImpossibleStruct(phase Phase, obj, field string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindImpossibleStruct,
		Obj:    obj,
		Field:  field,
		Detail: detail,
	}
}

// InvalidEnumValue reports a value with no declared variant.
func InvalidEnumValue(obj, field string, value uint64, typ string) *Error {
	return &Error{
		Phase: PhaseParse,
		Kind:  KindInvalidEnumValue,
		Obj:   obj,
		Field: field,
		Value: value,
		Type:  typ,
	}
}
