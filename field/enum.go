package field

import (
	"fmt"
	"sort"

	pdlerrors "github.com/wippyai/pdl-runtime/errors"
	"github.com/wippyai/pdl-runtime/wire"
)

// Enum is a scalar restricted to named variants.
type Enum struct {
	Scalar
	Type     string
	Variants map[uint64]string
}

// NewEnum declares an enum field. Variant values must fit the scalar.
func NewEnum(s Scalar, typ string, variants map[uint64]string) (Enum, error) {
	if len(variants) == 0 {
		return Enum{}, pdlerrors.ImpossibleStruct(pdlerrors.PhaseDeclare, s.Obj, s.Name,
			fmt.Sprintf("enum %s declares no variants", typ))
	}
	vs := make(map[uint64]string, len(variants))
	for v, name := range variants {
		if v > s.Max() {
			return Enum{}, pdlerrors.New(pdlerrors.PhaseDeclare, pdlerrors.KindConstraintOutOfBounds).
				Obj(s.Obj).
				Field(s.Name).
				Type(typ).
				Value(v).
				Detail("variant %s = %#x does not fit in %d bits", name, v, s.Bits()).
				Build()
		}
		vs[v] = name
	}
	return Enum{Scalar: s, Type: typ, Variants: vs}, nil
}

// VariantName returns the name declared for v.
func (e Enum) VariantName(v uint64) (string, bool) {
	name, ok := e.Variants[v]
	return name, ok
}

// VariantValue returns the value declared for name.
func (e Enum) VariantValue(name string) (uint64, bool) {
	for v, n := range e.Variants {
		if n == name {
			return v, true
		}
	}
	return 0, false
}

// Values returns the declared values in ascending order.
func (e Enum) Values() []uint64 {
	out := make([]uint64, 0, len(e.Variants))
	for v := range e.Variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Parse reads the scalar and rejects undeclared values. The cursor is left
// where it was on failure.
func (e Enum) Parse(c *wire.Cursor) (uint64, error) {
	probe := *c
	v, err := e.Scalar.Parse(&probe)
	if err != nil {
		return 0, err
	}
	if _, ok := e.Variants[v]; !ok {
		return 0, pdlerrors.InvalidEnumValue(e.Obj, e.Name, v, e.Type)
	}
	*c = probe
	return v, nil
}

func (e Enum) Write(w *wire.Writer, v uint64) error {
	if _, ok := e.Variants[v]; !ok {
		err := pdlerrors.InvalidEnumValue(e.Obj, e.Name, v, e.Type)
		err.Phase = pdlerrors.PhaseSerialize
		return err
	}
	return e.Scalar.Write(w, v)
}

func (e Enum) Check(v uint64) error {
	if _, ok := e.Variants[v]; !ok {
		err := pdlerrors.InvalidEnumValue(e.Obj, e.Name, v, e.Type)
		err.Phase = pdlerrors.PhaseBuild
		return err
	}
	return nil
}
