package field

import (
	"fmt"
	"math"

	pdlerrors "github.com/wippyai/pdl-runtime/errors"
	"github.com/wippyai/pdl-runtime/wire"
)

// Array is a sequence of scalar elements. Count is the declared element
// count, or zero when the length is taken from the surrounding packet.
type Array struct {
	Obj   string
	Name  string
	Elem  Scalar
	Count int
}

// NewArray declares an array field. When both count and size (in bytes) are
// declared they must agree, otherwise no byte length can satisfy the layout.
func NewArray(obj, name string, elem Scalar, count, size int) (Array, error) {
	if elem.Size() < 1 {
		return Array{}, pdlerrors.ImpossibleStruct(pdlerrors.PhaseDeclare, obj, name,
			fmt.Sprintf("element width %d bytes", elem.Size()))
	}
	if count < 0 || size < 0 {
		return Array{}, pdlerrors.ImpossibleStruct(pdlerrors.PhaseDeclare, obj, name,
			fmt.Sprintf("negative count %d or size %d", count, size))
	}
	if size > 0 && size%elem.Size() != 0 {
		return Array{}, pdlerrors.ImpossibleStruct(pdlerrors.PhaseDeclare, obj, name,
			fmt.Sprintf("size %d is not a multiple of the element size %d", size, elem.Size()))
	}
	if count > 0 && size > 0 && count*elem.Size() != size {
		return Array{}, pdlerrors.ImpossibleStruct(pdlerrors.PhaseDeclare, obj, name,
			fmt.Sprintf("%d elements of %d bytes cannot occupy %d bytes", count, elem.Size(), size))
	}
	if count == 0 && size > 0 {
		count = size / elem.Size()
	}
	return Array{Obj: obj, Name: name, Elem: elem, Count: count}, nil
}

// Size returns the encoded size of n elements.
func (a Array) Size(n int) int {
	return n * a.Elem.Size()
}

// Conforms reports whether buf can hold the declared element count.
// Arrays without a declared count always conform.
func (a Array) Conforms(buf []byte) bool {
	return len(buf) >= a.Size(a.Count)
}

// ParseSized consumes size bytes and decodes them as elements. A negative
// size, as decoded from a malformed length field, is an invalid_length.
func (a Array) ParseSized(c *wire.Cursor, size int) ([]uint64, error) {
	if size < 0 {
		return nil, pdlerrors.InvalidLength(a.Obj, size, c.Remaining())
	}
	if size%a.Elem.Size() != 0 {
		return nil, pdlerrors.InvalidArraySize(a.Obj, a.Name, size, a.Elem.Size())
	}
	if c.Remaining() < size {
		return nil, pdlerrors.InvalidLength(a.Obj, size, c.Remaining())
	}
	return a.parseN(c, size/a.Elem.Size())
}

// ParseRest consumes every remaining byte.
func (a Array) ParseRest(c *wire.Cursor) ([]uint64, error) {
	return a.ParseSized(c, c.Remaining())
}

// ParseCounted consumes count elements, or the declared count when count is
// negative.
func (a Array) ParseCounted(c *wire.Cursor, count int) ([]uint64, error) {
	if count < 0 {
		count = a.Count
	}
	if count < 0 {
		return nil, pdlerrors.InvalidLength(a.Obj, count, c.Remaining())
	}
	// Compare in elements so a huge count cannot overflow the byte size.
	if count > c.Remaining()/a.Elem.Size() {
		wanted := math.MaxInt
		if count <= math.MaxInt/a.Elem.Size() {
			wanted = a.Size(count)
		}
		return nil, pdlerrors.New(pdlerrors.PhaseParse, pdlerrors.KindInvalidLength).
			Obj(a.Obj).
			Field(a.Name).
			Lengths(wanted, c.Remaining()).
			Detail("%d elements of %d bytes, %d bytes remaining", count, a.Elem.Size(), c.Remaining()).
			Build()
	}
	return a.parseN(c, count)
}

func (a Array) parseN(c *wire.Cursor, n int) ([]uint64, error) {
	probe := *c
	out := make([]uint64, n)
	for i := range out {
		v, err := a.Elem.Parse(&probe)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	*c = probe
	return out, nil
}

// Write appends every element. A declared count must match len(vs); a
// mismatch is an invalid_length in bytes.
func (a Array) Write(w *wire.Writer, vs []uint64) error {
	if a.Count > 0 && len(vs) != a.Count {
		return pdlerrors.New(pdlerrors.PhaseSerialize, pdlerrors.KindInvalidLength).
			Obj(a.Obj).
			Field(a.Name).
			Lengths(a.Size(a.Count), a.Size(len(vs))).
			Detail("expected %d elements, got %d", a.Count, len(vs)).
			Build()
	}
	tmp := wire.NewWriterSize(a.Size(len(vs)))
	for _, v := range vs {
		if err := a.Elem.Write(tmp, v); err != nil {
			return err
		}
	}
	w.WriteBytes(tmp.Bytes())
	return nil
}
