package packet

import (
	"encoding/json"

	pdlruntime "github.com/wippyai/pdl-runtime"
	"github.com/wippyai/pdl-runtime/wire"
)

var fooDecl = MustDecl(NewScalarDecl("Foo", "x", 3, wire.LittleEndian))

// FooDecl returns the declaration of Foo.
func FooDecl() *Decl {
	return fooDecl
}

// Foo is a packet with a single 24-bit little-endian field x.
//
// The zero Foo holds no record. Its Size still reports the declared 3 bytes
// while Bytes returns nil and X returns 0.
type Foo struct {
	p Packet
}

// FooBuilder stages the fields of a Foo.
type FooBuilder struct {
	X uint32 `json:"x"`
}

// Build validates the staged fields. X must fit in 24 bits.
func (b FooBuilder) Build() (Foo, error) {
	p, err := Builder{Decl: fooDecl, Value: uint64(b.X)}.Build()
	if err != nil {
		return Foo{}, err
	}
	return Foo{p: p}, nil
}

// FooConforms reports whether buf is long enough to hold a Foo.
func FooConforms(buf []byte) bool {
	return fooDecl.Conforms(buf)
}

// ParseFoo decodes a Foo that occupies all of buf.
func ParseFoo(buf []byte) (Foo, error) {
	p, err := fooDecl.Parse(buf)
	if err != nil {
		return Foo{}, err
	}
	return Foo{p: p}, nil
}

// ParseFooFrom decodes a Foo embedded at the cursor position.
func ParseFooFrom(c *wire.Cursor) (Foo, error) {
	p, err := fooDecl.ParseFrom(c)
	if err != nil {
		return Foo{}, err
	}
	return Foo{p: p}, nil
}

// X returns the x field.
func (f Foo) X() uint32 {
	return uint32(f.p.Value())
}

func (f Foo) Size() int                  { return fooDecl.Size() }
func (f Foo) Bytes() []byte              { return f.p.Bytes() }
func (f Foo) AppendTo(dst []byte) []byte { return f.p.AppendTo(dst) }
func (f Foo) Packet() Packet             { return f.p }
func (f Foo) String() string             { return f.p.String() }

func (f Foo) MarshalBinary() ([]byte, error) {
	return f.p.MarshalBinary()
}

func (f *Foo) UnmarshalBinary(data []byte) error {
	parsed, err := ParseFoo(data)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Foo) MarshalJSON() ([]byte, error) {
	return f.p.MarshalJSON()
}

func (f *Foo) UnmarshalJSON(data []byte) error {
	var b FooBuilder
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	built, err := b.Build()
	if err != nil {
		return err
	}
	*f = built
	return nil
}

var _ pdlruntime.Packet = Foo{}
