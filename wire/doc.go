// Package wire provides the byte-level primitives generated packet code is
// built on: a Cursor that tracks the position of sequential field parses over
// a borrowed buffer, a Writer that accumulates the canonical encoding, and
// the ByteOrder a field is declared with.
//
// Integers of any width from 1 to 8 bytes are supported in both byte orders.
// Unlike encoding/binary, widths are not restricted to powers of two, so a
// 24-bit field reads and writes exactly three bytes.
package wire
