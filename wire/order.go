package wire

import (
	"fmt"
	"strings"
)

// ByteOrder is the declared byte order of a field.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// String returns the declaration spelling of the order.
func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "little_endian"
	case BigEndian:
		return "big_endian"
	default:
		return fmt.Sprintf("ByteOrder(%d)", uint8(o))
	}
}

// ParseByteOrder accepts "little_endian", "little", "le" and the big-endian
// equivalents, case-insensitively.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little_endian", "little", "le":
		return LittleEndian, nil
	case "big_endian", "big", "be":
		return BigEndian, nil
	}
	return 0, fmt.Errorf("wire: unknown byte order %q", s)
}

// MaxWidth is the widest integer a field may declare, in bytes.
const MaxWidth = 8

// PutUint encodes the low n bytes of v into dst in the given order.
// dst must have room for n bytes and n must be in [1, MaxWidth].
func PutUint(dst []byte, v uint64, n int, order ByteOrder) {
	_ = dst[n-1]
	if order == BigEndian {
		for i := n - 1; i >= 0; i-- {
			dst[i] = byte(v)
			v >>= 8
		}
		return
	}
	for i := 0; i < n; i++ {
		dst[i] = byte(v)
		v >>= 8
	}
}

// Uint decodes an unsigned integer from the first n bytes of src,
// zero-extended to 64 bits.
func Uint(src []byte, n int, order ByteOrder) uint64 {
	_ = src[n-1]
	var v uint64
	if order == BigEndian {
		for i := 0; i < n; i++ {
			v = v<<8 | uint64(src[i])
		}
		return v
	}
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(src[i])
	}
	return v
}
