package packet

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	pdlerrors "github.com/wippyai/pdl-runtime/errors"
	"github.com/wippyai/pdl-runtime/wire"
)

func TestParseFoo(t *testing.T) {
	foo, err := ParseFoo([]byte{0x01, 0x02, 0x03})
	if err != nil {
		t.Fatalf("ParseFoo: %v", err)
	}
	if foo.X() != 0x030201 {
		t.Errorf("X() = %#x, want 0x030201", foo.X())
	}
	if foo.X() != 197121 {
		t.Errorf("X() = %d, want 197121", foo.X())
	}
	if !bytes.Equal(foo.Bytes(), []byte{0x01, 0x02, 0x03}) {
		t.Errorf("Bytes() = %x, want 010203", foo.Bytes())
	}
}

func TestParseFooShort(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		got  int
	}{
		{"empty", nil, 0},
		{"one byte", []byte{0x01}, 1},
		{"two bytes", []byte{0x01, 0x02}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFoo(tt.data)
			e, ok := pdlerrors.As(err)
			if !ok {
				t.Fatalf("expected structured error, got %v", err)
			}
			if e.Kind != pdlerrors.KindInvalidLength {
				t.Fatalf("Kind = %v, want invalid_length", e.Kind)
			}
			if e.Obj != "Foo" || e.Wanted != 3 || e.Got != tt.got {
				t.Errorf("got {%s wanted:%d got:%d}, want {Foo wanted:3 got:%d}", e.Obj, e.Wanted, e.Got, tt.got)
			}
		})
	}
}

func TestParseFooTrailingBytes(t *testing.T) {
	_, err := ParseFoo([]byte{0x01, 0x02, 0x03, 0x04})
	if !errors.Is(err, pdlerrors.ErrInvalidPacket) {
		t.Fatalf("expected invalid_packet, got %v", err)
	}
	e, _ := pdlerrors.As(err)
	if e.Wanted != 3 || e.Got != 4 {
		t.Errorf("Wanted/Got = %d/%d, want 3/4", e.Wanted, e.Got)
	}
}

func TestParseFooFromEmbedded(t *testing.T) {
	c := wire.NewCursor([]byte{0x01, 0x02, 0x03, 0xaa, 0xbb})
	foo, err := ParseFooFrom(c)
	if err != nil {
		t.Fatalf("ParseFooFrom: %v", err)
	}
	if foo.X() != 0x030201 {
		t.Errorf("X() = %#x", foo.X())
	}
	if c.Remaining() != 2 {
		t.Errorf("Remaining = %d, want 2", c.Remaining())
	}

	short := wire.NewCursor([]byte{0x01})
	if _, err := ParseFooFrom(short); !errors.Is(err, pdlerrors.ErrInvalidLength) {
		t.Errorf("expected invalid_length, got %v", err)
	}
	if short.Pos() != 0 {
		t.Errorf("cursor advanced on failure: %d", short.Pos())
	}
}

func TestFooConforms(t *testing.T) {
	if FooConforms([]byte{1, 2}) {
		t.Error("2 bytes should not conform")
	}
	if !FooConforms([]byte{1, 2, 3}) {
		t.Error("3 bytes should conform")
	}
	if !FooConforms([]byte{1, 2, 3, 4}) {
		t.Error("4 bytes should conform; trailing bytes are checked by Parse")
	}
}

func TestFooBuilderIdentity(t *testing.T) {
	for _, v := range []uint32{0, 1, 0xff, 0x0100, 0x010203, 0x7fffff, 0xffffff} {
		foo, err := FooBuilder{X: v}.Build()
		if err != nil {
			t.Fatalf("Build(%#x): %v", v, err)
		}
		if foo.X() != v {
			t.Errorf("Build(%#x).X() = %#x", v, foo.X())
		}
	}
}

func TestFooBuilderRejectsOutOfRange(t *testing.T) {
	for _, v := range []uint32{0x1000000, 0xffffffff} {
		_, err := FooBuilder{X: v}.Build()
		e, ok := pdlerrors.As(err)
		if !ok {
			t.Fatalf("Build(%#x): expected structured error, got %v", v, err)
		}
		if e.Phase != pdlerrors.PhaseBuild || e.Kind != pdlerrors.KindConstraintOutOfBounds {
			t.Errorf("Build(%#x): got %s/%s", v, e.Phase, e.Kind)
		}
		if e.Obj != "Foo" || e.Field != "x" || e.Value != uint64(v) {
			t.Errorf("Build(%#x): context %+v", v, e)
		}
	}
}

func TestFooRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x80, 0xff, 0x100, 0xabcd, 0x010203, 0x800000, 0xfffffe, 0xffffff}
	for v := uint32(0); v <= 0xffffff; v += 0x010101 {
		values = append(values, v)
	}

	for _, v := range values {
		foo, err := FooBuilder{X: v}.Build()
		if err != nil {
			t.Fatalf("Build(%#x): %v", v, err)
		}
		data := foo.Bytes()
		if len(data) != 3 {
			t.Fatalf("Bytes(%#x) has length %d, want 3", v, len(data))
		}
		parsed, err := ParseFoo(data)
		if err != nil {
			t.Fatalf("ParseFoo(%x): %v", data, err)
		}
		if parsed.X() != v {
			t.Errorf("round trip %#x: got %#x", v, parsed.X())
		}
	}
}

func TestFooEndianness(t *testing.T) {
	foo, err := FooBuilder{X: 0x010203}.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(foo.Bytes(), []byte{0x03, 0x02, 0x01}) {
		t.Errorf("little-endian: got %x, want 030201", foo.Bytes())
	}

	be := MustDecl(NewScalarDecl("FooBE", "x", 3, wire.BigEndian))
	p, err := be.New(0x010203)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p.Bytes(), []byte{0x01, 0x02, 0x03}) {
		t.Errorf("big-endian: got %x, want 010203", p.Bytes())
	}
}

func TestFooSize(t *testing.T) {
	for _, v := range []uint32{0, 1, 0xffffff} {
		foo, err := FooBuilder{X: v}.Build()
		if err != nil {
			t.Fatal(err)
		}
		if foo.Size() != 3 {
			t.Errorf("Size() for %#x = %d, want 3", v, foo.Size())
		}
	}
	if (Foo{}).Size() != 3 {
		t.Error("Size() should not depend on a record")
	}
}

func TestZeroFoo(t *testing.T) {
	var foo Foo
	if foo.Size() != 3 {
		t.Errorf("Size() = %d, want 3", foo.Size())
	}
	if foo.Bytes() != nil {
		t.Errorf("Bytes() = %x, want nil", foo.Bytes())
	}
	if foo.X() != 0 {
		t.Errorf("X() = %d, want 0", foo.X())
	}
}

func TestFooAppendTo(t *testing.T) {
	foo, _ := FooBuilder{X: 0x030201}.Build()
	out := foo.AppendTo([]byte{0xaa})
	if !bytes.Equal(out, []byte{0xaa, 0x01, 0x02, 0x03}) {
		t.Errorf("AppendTo = %x", out)
	}
}

func TestFooBinaryMarshaling(t *testing.T) {
	foo, _ := FooBuilder{X: 42}.Build()
	data, err := foo.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var back Foo
	if err := back.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if back.X() != 42 {
		t.Errorf("X() = %d, want 42", back.X())
	}

	if err := back.UnmarshalBinary([]byte{1, 2, 3, 4}); !errors.Is(err, pdlerrors.ErrInvalidPacket) {
		t.Errorf("expected invalid_packet, got %v", err)
	}
	if back.X() != 42 {
		t.Error("failed UnmarshalBinary modified the receiver")
	}
}

func TestFooJSON(t *testing.T) {
	foo, _ := FooBuilder{X: 197121}.Build()
	data, err := json.Marshal(foo)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"x":197121}` {
		t.Errorf("Marshal = %s", data)
	}

	var back Foo
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.X() != 197121 {
		t.Errorf("X() = %d", back.X())
	}

	if err := json.Unmarshal([]byte(`{"x":16777216}`), &back); !errors.Is(err, pdlerrors.ErrConstraintOutOfBounds) {
		t.Errorf("expected constraint_out_of_bounds, got %v", err)
	}

	var b FooBuilder
	if err := json.Unmarshal([]byte(`{"x":5}`), &b); err != nil || b.X != 5 {
		t.Errorf("FooBuilder JSON: %+v, %v", b, err)
	}
}

func TestFooString(t *testing.T) {
	foo, _ := FooBuilder{X: 7}.Build()
	if got := foo.String(); got != "Foo { x: 7 }" {
		t.Errorf("String() = %q", got)
	}
}

func TestFooSharedAcrossGoroutines(t *testing.T) {
	foo, err := ParseFoo([]byte{0x01, 0x02, 0x03})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(f Foo) {
			defer wg.Done()
			if f.X() != 0x030201 {
				t.Errorf("X() = %#x", f.X())
			}
			if !bytes.Equal(f.Bytes(), []byte{0x01, 0x02, 0x03}) {
				t.Errorf("Bytes() = %x", f.Bytes())
			}
		}(foo)
	}
	wg.Wait()
}
