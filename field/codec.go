package field

import "github.com/wippyai/pdl-runtime/wire"

// Codec is implemented by every single-value field codec.
type Codec interface {
	// Object returns the name of the packet or struct owning the field.
	Object() string
	// FieldName returns the declared field name.
	FieldName() string
	// Size returns the encoded width in bytes, independent of the value.
	Size() int
	// Conforms reports whether buf holds at least Size() bytes.
	Conforms(buf []byte) bool
	// Parse consumes Size() bytes from c.
	Parse(c *wire.Cursor) (uint64, error)
	// Write appends the encoding of v to w.
	Write(w *wire.Writer, v uint64) error
	// Check validates v for storage in a record.
	Check(v uint64) error
}

var (
	_ Codec = Scalar{}
	_ Codec = Enum{}
	_ Codec = Constrained{}
)
