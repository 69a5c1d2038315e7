package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestCursorReadBytes(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	c := NewCursor(data)

	got, err := c.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("ReadBytes: got %v, want [1 2 3]", got)
	}
	if c.Pos() != 3 {
		t.Errorf("position: got %d, want 3", c.Pos())
	}
	if c.Remaining() != 2 {
		t.Errorf("remaining: got %d, want 2", c.Remaining())
	}

	_, err = c.ReadBytes(10)
	if !errors.Is(err, ErrShortBuffer) {
		t.Errorf("expected ErrShortBuffer, got %v", err)
	}
	if c.Pos() != 3 {
		t.Errorf("position moved on failed read: got %d, want 3", c.Pos())
	}

	if !bytes.Equal(c.Rest(), []byte{0x04, 0x05}) {
		t.Errorf("Rest: got %v", c.Rest())
	}
	if err := c.Skip(2); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if !c.Empty() {
		t.Error("cursor should be empty")
	}
	if c.Len() != 5 {
		t.Errorf("Len: got %d, want 5", c.Len())
	}
}

func TestCursorReadBytesNegative(t *testing.T) {
	c := NewCursor([]byte{0x01})
	if _, err := c.ReadBytes(-1); err == nil {
		t.Error("expected error for negative length")
	}
	if c.Pos() != 0 {
		t.Errorf("position: got %d, want 0", c.Pos())
	}
}

func TestCursorReadUint(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		width int
		order ByteOrder
		want  uint64
	}{
		{"u8", []byte{0xab}, 1, LittleEndian, 0xab},
		{"u16 le", []byte{0x01, 0x02}, 2, LittleEndian, 0x0201},
		{"u16 be", []byte{0x01, 0x02}, 2, BigEndian, 0x0102},
		{"u24 le", []byte{0x01, 0x02, 0x03}, 3, LittleEndian, 0x030201},
		{"u24 be", []byte{0x01, 0x02, 0x03}, 3, BigEndian, 0x010203},
		{"u40 le", []byte{0x01, 0x02, 0x03, 0x04, 0x05}, 5, LittleEndian, 0x0504030201},
		{"u56 be", []byte{1, 2, 3, 4, 5, 6, 7}, 7, BigEndian, 0x01020304050607},
		{"u64 le max", bytes.Repeat([]byte{0xff}, 8), 8, LittleEndian, ^uint64(0)},
		{"u64 be", []byte{0x80, 0, 0, 0, 0, 0, 0, 1}, 8, BigEndian, 0x8000000000000001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.data)
			got, err := c.ReadUint(tt.width, tt.order)
			if err != nil {
				t.Fatalf("ReadUint: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadUint: got %#x, want %#x", got, tt.want)
			}
			if c.Pos() != tt.width {
				t.Errorf("position: got %d, want %d", c.Pos(), tt.width)
			}
		})
	}
}

func TestCursorReadUintInvalidWidth(t *testing.T) {
	c := NewCursor(make([]byte, 16))
	for _, n := range []int{0, 9, -1} {
		if _, err := c.ReadUint(n, LittleEndian); err == nil {
			t.Errorf("ReadUint(%d): expected error", n)
		}
	}
	if c.Pos() != 0 {
		t.Errorf("position: got %d, want 0", c.Pos())
	}
}

func TestCursorSequentialReads(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06})

	a, err := c.ReadUint(3, LittleEndian)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	b, err := c.ReadUint(3, BigEndian)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if a != 0x030201 || b != 0x040506 {
		t.Errorf("got %#x, %#x", a, b)
	}
	if _, err := c.ReadUint(1, LittleEndian); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("expected ErrShortBuffer, got %v", err)
	}
}

func TestWriterWriteUint(t *testing.T) {
	tests := []struct {
		name  string
		v     uint64
		width int
		order ByteOrder
		want  []byte
	}{
		{"u24 le", 0x010203, 3, LittleEndian, []byte{0x03, 0x02, 0x01}},
		{"u24 be", 0x010203, 3, BigEndian, []byte{0x01, 0x02, 0x03}},
		{"u8", 0x7f, 1, BigEndian, []byte{0x7f}},
		{"u48 le", 0x060504030201, 6, LittleEndian, []byte{1, 2, 3, 4, 5, 6}},
		{"u64 be", 0x0102030405060708, 8, BigEndian, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"truncates high bits", 0xff010203, 3, BigEndian, []byte{0x01, 0x02, 0x03}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			if err := w.WriteUint(tt.v, tt.width, tt.order); err != nil {
				t.Fatalf("WriteUint: %v", err)
			}
			if !bytes.Equal(w.Bytes(), tt.want) {
				t.Errorf("got %x, want %x", w.Bytes(), tt.want)
			}
			if w.Len() != tt.width {
				t.Errorf("Len: got %d, want %d", w.Len(), tt.width)
			}
		})
	}
}

func TestWriterInvalidWidth(t *testing.T) {
	w := NewWriter()
	if err := w.WriteUint(1, 0, LittleEndian); err == nil {
		t.Error("expected error for width 0")
	}
	if err := w.WriteUint(1, 9, LittleEndian); err == nil {
		t.Error("expected error for width 9")
	}
	if w.Len() != 0 {
		t.Errorf("Len: got %d, want 0", w.Len())
	}
}

func TestWriterAppends(t *testing.T) {
	w := NewWriterBuffer([]byte{0xaa})
	w.Byte(0xbb)
	w.WriteBytes([]byte{0xcc, 0xdd})
	if err := w.WriteUint(0x0102, 2, LittleEndian); err != nil {
		t.Fatal(err)
	}
	want := []byte{0xaa, 0xbb, 0xcc, 0xdd, 0x02, 0x01}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got %x, want %x", w.Bytes(), want)
	}

	sized := NewWriterSize(3)
	if sized.Len() != 0 {
		t.Errorf("sized writer Len: got %d, want 0", sized.Len())
	}
}

func TestRoundTripAllWidths(t *testing.T) {
	for width := 1; width <= MaxWidth; width++ {
		for _, order := range []ByteOrder{LittleEndian, BigEndian} {
			var v uint64 = 0x8877665544332211
			if width < MaxWidth {
				v &= 1<<(8*width) - 1
			}
			w := NewWriter()
			if err := w.WriteUint(v, width, order); err != nil {
				t.Fatalf("width %d %s: %v", width, order, err)
			}
			got, err := NewCursor(w.Bytes()).ReadUint(width, order)
			if err != nil {
				t.Fatalf("width %d %s: %v", width, order, err)
			}
			if got != v {
				t.Errorf("width %d %s: got %#x, want %#x", width, order, got, v)
			}
		}
	}
}

func TestParseByteOrder(t *testing.T) {
	tests := []struct {
		in   string
		want ByteOrder
	}{
		{"little_endian", LittleEndian},
		{"LE", LittleEndian},
		{" little ", LittleEndian},
		{"big_endian", BigEndian},
		{"be", BigEndian},
		{"Big", BigEndian},
	}
	for _, tt := range tests {
		got, err := ParseByteOrder(tt.in)
		if err != nil {
			t.Errorf("ParseByteOrder(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseByteOrder(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseByteOrder("middle"); err == nil {
		t.Error("expected error for unknown order")
	}
}

func TestByteOrderString(t *testing.T) {
	if LittleEndian.String() != "little_endian" {
		t.Errorf("got %q", LittleEndian.String())
	}
	if BigEndian.String() != "big_endian" {
		t.Errorf("got %q", BigEndian.String())
	}
	if ByteOrder(7).String() != "ByteOrder(7)" {
		t.Errorf("got %q", ByteOrder(7).String())
	}
}
