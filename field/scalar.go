package field

import (
	"fmt"

	pdlerrors "github.com/wippyai/pdl-runtime/errors"
	"github.com/wippyai/pdl-runtime/wire"
)

// Scalar is an unsigned integer field of Width bytes in Order.
type Scalar struct {
	Obj   string
	Name  string
	Width int
	Order wire.ByteOrder
}

// NewScalar validates the declaration and returns the codec.
func NewScalar(obj, name string, width int, order wire.ByteOrder) (Scalar, error) {
	if width < 1 || width > wire.MaxWidth {
		return Scalar{}, pdlerrors.New(pdlerrors.PhaseDeclare, pdlerrors.KindImpossibleStruct).
			Obj(obj).
			Field(name).
			Value(width).
			Detail("width %d bytes is outside 1..%d", width, wire.MaxWidth).
			Build()
	}
	if order != wire.LittleEndian && order != wire.BigEndian {
		return Scalar{}, pdlerrors.New(pdlerrors.PhaseDeclare, pdlerrors.KindImpossibleStruct).
			Obj(obj).
			Field(name).
			Detail("unknown byte order %v", order).
			Build()
	}
	return Scalar{Obj: obj, Name: name, Width: width, Order: order}, nil
}

// WidthForBits returns ceil(bits/8).
func WidthForBits(bits int) int {
	return (bits + 7) / 8
}

// FromBits declares a scalar by bit width.
func FromBits(obj, name string, bits int, order wire.ByteOrder) (Scalar, error) {
	if bits <= 0 {
		return Scalar{}, pdlerrors.New(pdlerrors.PhaseDeclare, pdlerrors.KindImpossibleStruct).
			Obj(obj).
			Field(name).
			Value(bits).
			Detail("bit width %d must be positive", bits).
			Build()
	}
	return NewScalar(obj, name, WidthForBits(bits), order)
}

func (s Scalar) Object() string    { return s.Obj }
func (s Scalar) FieldName() string { return s.Name }
func (s Scalar) Size() int         { return s.Width }

// Bits returns the declared width in bits.
func (s Scalar) Bits() int {
	return s.Width * 8
}

// Max returns the largest encodable value, 2^(8*Width) - 1.
func (s Scalar) Max() uint64 {
	if s.Width >= wire.MaxWidth {
		return ^uint64(0)
	}
	return 1<<(8*uint(s.Width)) - 1
}

func (s Scalar) Conforms(buf []byte) bool {
	return len(buf) >= s.Width
}

// Parse reads Width bytes. Every bit pattern is a valid value, so the only
// failure is a short buffer.
func (s Scalar) Parse(c *wire.Cursor) (uint64, error) {
	if c.Remaining() < s.Width {
		return 0, pdlerrors.InvalidLength(s.Obj, s.Width, c.Remaining())
	}
	return c.ReadUint(s.Width, s.Order)
}

// Write appends exactly Width bytes. An out-of-range value is reported, not
// truncated.
func (s Scalar) Write(w *wire.Writer, v uint64) error {
	if v > s.Max() {
		return s.rangeError(pdlerrors.PhaseSerialize, v)
	}
	return w.WriteUint(v, s.Width, s.Order)
}

func (s Scalar) Check(v uint64) error {
	if v > s.Max() {
		return s.rangeError(pdlerrors.PhaseBuild, v)
	}
	return nil
}

func (s Scalar) rangeError(phase pdlerrors.Phase, v uint64) error {
	return pdlerrors.New(phase, pdlerrors.KindConstraintOutOfBounds).
		Obj(s.Obj).
		Field(s.Name).
		Value(v).
		Detail("invalid value for %s::%s: %#x > %#x", s.Obj, s.Name, v, s.Max()).
		Build()
}

// String describes the codec, e.g. "Foo.x: u24 little_endian".
func (s Scalar) String() string {
	return fmt.Sprintf("%s.%s: u%d %s", s.Obj, s.Name, s.Bits(), s.Order)
}
