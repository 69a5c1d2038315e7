package packet

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pdlruntime "github.com/wippyai/pdl-runtime"
	pdlerrors "github.com/wippyai/pdl-runtime/errors"
	"github.com/wippyai/pdl-runtime/field"
	"github.com/wippyai/pdl-runtime/wire"
)

// ErrNoDecl is returned by Builder.Build when no declaration is set.
var ErrNoDecl = errors.New("packet: builder has no declaration")

// Decl declares a packet consisting of a single field.
type Decl struct {
	Name  string
	Field field.Codec
}

// NewDecl declares a packet around an existing field codec.
func NewDecl(name string, f field.Codec) (*Decl, error) {
	if name == "" {
		return nil, errors.New("packet: declaration needs a name")
	}
	if f == nil {
		return nil, fmt.Errorf("packet: %s declares no field", name)
	}
	return &Decl{Name: name, Field: f}, nil
}

// NewScalarDecl declares a packet with one unconstrained integer field.
func NewScalarDecl(name, fieldName string, width int, order wire.ByteOrder) (*Decl, error) {
	s, err := field.NewScalar(name, fieldName, width, order)
	if err != nil {
		return nil, err
	}
	return NewDecl(name, s)
}

// MustDecl panics if err is non-nil. It is meant for package-level
// declarations of generated packets.
func MustDecl(d *Decl, err error) *Decl {
	if err != nil {
		panic(err)
	}
	return d
}

// Size returns the fixed encoded size of the packet.
func (d *Decl) Size() int {
	return d.Field.Size()
}

// Conforms reports whether buf is long enough to attempt a parse.
func (d *Decl) Conforms(buf []byte) bool {
	return d.Field.Conforms(buf)
}

// Parse decodes a top-level packet. The buffer must be consumed exactly.
func (d *Decl) Parse(buf []byte) (Packet, error) {
	c := wire.NewCursor(buf)
	p, err := d.ParseFrom(c)
	if err != nil {
		return Packet{}, err
	}
	if !c.Empty() {
		Logger().Debug("trailing bytes after packet",
			zap.String("packet", d.Name),
			zap.Int("consumed", c.Pos()),
			zap.Int("length", c.Len()))
		return Packet{}, pdlerrors.InvalidPacket(d.Name, c.Pos(), c.Len())
	}
	return p, nil
}

// ParseFrom decodes a packet embedded at the cursor position. Bytes after
// the packet are left for the caller.
func (d *Decl) ParseFrom(c *wire.Cursor) (Packet, error) {
	v, err := d.Field.Parse(c)
	if err != nil {
		Logger().Debug("rejected packet",
			zap.String("packet", d.Name),
			zap.Int("position", c.Pos()),
			zap.Error(err))
		return Packet{}, err
	}
	return d.newPacket(v), nil
}

// New is shorthand for Builder{Decl: d, Value: v}.Build().
func (d *Decl) New(v uint64) (Packet, error) {
	return Builder{Decl: d, Value: v}.Build()
}

func (d *Decl) newPacket(v uint64) Packet {
	return Packet{decl: d, rec: &record{value: v}}
}

// record is the immutable field storage shared by every copy of a handle.
type record struct {
	value uint64
}

// Packet is a handle on an immutable record. The zero Packet holds no
// record; Parse and Build never return one without an error. A typed
// handle such as the zero Foo keeps its declaration, so Size reports the
// declared size while Bytes returns nil.
type Packet struct {
	decl *Decl
	rec  *record
}

var _ pdlruntime.Packet = Packet{}

// Decl returns the declaration the packet was built from.
func (p Packet) Decl() *Decl {
	return p.decl
}

// Valid reports whether the handle holds a record.
func (p Packet) Valid() bool {
	return p.rec != nil
}

// Value returns the field value.
func (p Packet) Value() uint64 {
	if p.rec == nil {
		return 0
	}
	return p.rec.value
}

// Size returns the declared size without serializing.
func (p Packet) Size() int {
	if p.decl == nil {
		return 0
	}
	return p.decl.Size()
}

// Bytes returns the canonical encoding, exactly Size() bytes long.
func (p Packet) Bytes() []byte {
	if p.rec == nil {
		return nil
	}
	return p.AppendTo(make([]byte, 0, p.Size()))
}

// AppendTo appends the canonical encoding to dst.
func (p Packet) AppendTo(dst []byte) []byte {
	if p.rec == nil {
		return dst
	}
	w := wire.NewWriterBuffer(dst)
	if err := p.EncodeTo(w); err != nil {
		// Records are validated on construction.
		panic(fmt.Sprintf("packet: encode %s: %v", p.decl.Name, err))
	}
	return w.Bytes()
}

// EncodeTo writes the packet into an enclosing writer.
func (p Packet) EncodeTo(w *wire.Writer) error {
	if p.rec == nil {
		return fmt.Errorf("packet: encode of empty handle")
	}
	return p.decl.Field.Write(w, p.rec.value)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p Packet) MarshalBinary() ([]byte, error) {
	if p.rec == nil {
		return nil, fmt.Errorf("packet: marshal of empty handle")
	}
	return p.Bytes(), nil
}

// MarshalJSON encodes the field flattened into one object, e.g. {"x":197121}.
func (p Packet) MarshalJSON() ([]byte, error) {
	if p.rec == nil {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]uint64{p.decl.Field.FieldName(): p.rec.value})
}

// Equal reports whether both handles declare the same packet and value.
func (p Packet) Equal(q Packet) bool {
	return p.decl == q.decl && p.Value() == q.Value() && p.Valid() == q.Valid()
}

func (p Packet) String() string {
	if p.rec == nil {
		return "<nil>"
	}
	if e, ok := p.decl.Field.(field.Enum); ok {
		if name, ok := e.VariantName(p.rec.value); ok {
			return fmt.Sprintf("%s { %s: %s::%s }", p.decl.Name, e.Name, e.Type, name)
		}
	}
	return fmt.Sprintf("%s { %s: %d }", p.decl.Name, p.decl.Field.FieldName(), p.rec.value)
}

// Builder stages a value before it is validated into a record.
type Builder struct {
	Decl  *Decl
	Value uint64
}

// Build validates the value against the field codec and returns a new
// handle.
func (b Builder) Build() (Packet, error) {
	if b.Decl == nil {
		return Packet{}, ErrNoDecl
	}
	if err := b.Decl.Field.Check(b.Value); err != nil {
		Logger().Debug("rejected build",
			zap.String("packet", b.Decl.Name),
			zap.Uint64("value", b.Value),
			zap.Error(err))
		return Packet{}, err
	}
	return b.Decl.newPacket(b.Value), nil
}
