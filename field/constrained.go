package field

import (
	"fmt"

	pdlerrors "github.com/wippyai/pdl-runtime/errors"
	"github.com/wippyai/pdl-runtime/wire"
)

// Constrained is a scalar whose value must lie in [Lo, Hi].
type Constrained struct {
	Scalar
	Lo uint64
	Hi uint64
}

// NewConstrained declares a range-constrained field.
func NewConstrained(s Scalar, lo, hi uint64) (Constrained, error) {
	if lo > hi || hi > s.Max() {
		return Constrained{}, pdlerrors.ImpossibleStruct(pdlerrors.PhaseDeclare, s.Obj, s.Name,
			fmt.Sprintf("range [%#x, %#x] is empty or exceeds %d bits", lo, hi, s.Bits()))
	}
	return Constrained{Scalar: s, Lo: lo, Hi: hi}, nil
}

func (f Constrained) Parse(c *wire.Cursor) (uint64, error) {
	probe := *c
	v, err := f.Scalar.Parse(&probe)
	if err != nil {
		return 0, err
	}
	if err := f.check(pdlerrors.PhaseParse, v); err != nil {
		return 0, err
	}
	*c = probe
	return v, nil
}

func (f Constrained) Write(w *wire.Writer, v uint64) error {
	if err := f.check(pdlerrors.PhaseSerialize, v); err != nil {
		return err
	}
	return f.Scalar.Write(w, v)
}

func (f Constrained) Check(v uint64) error {
	return f.check(pdlerrors.PhaseBuild, v)
}

func (f Constrained) check(phase pdlerrors.Phase, v uint64) error {
	if v < f.Lo || v > f.Hi {
		return pdlerrors.New(phase, pdlerrors.KindConstraintOutOfBounds).
			Obj(f.Obj).
			Field(f.Name).
			Value(v).
			Detail("%s was %#x, outside [%#x, %#x]", f.Name, v, f.Lo, f.Hi).
			Build()
	}
	return nil
}
