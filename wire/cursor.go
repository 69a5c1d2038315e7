package wire

import (
	"errors"
	"fmt"
)

// ErrShortBuffer is returned when fewer bytes remain than a read requires.
var ErrShortBuffer = errors.New("wire: short buffer")

// Cursor is a positioned view over a borrowed, read-only byte buffer.
// The position only advances when a read succeeds.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a Cursor at the start of buf. The buffer is not copied
// and must not be modified while the cursor is in use.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unconsumed bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Empty reports whether every byte has been consumed.
func (c *Cursor) Empty() bool {
	return c.pos >= len(c.buf)
}

// Rest returns the unconsumed bytes without advancing.
func (c *Cursor) Rest() []byte {
	return c.buf[c.pos:]
}

// ReadBytes consumes exactly n bytes. The returned slice aliases the buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, c.wrapError(n)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.ReadBytes(n)
	return err
}

// ReadUint consumes n bytes and decodes them as an unsigned integer.
func (c *Cursor) ReadUint(n int, order ByteOrder) (uint64, error) {
	if n < 1 || n > MaxWidth {
		return 0, fmt.Errorf("wire: invalid integer width %d", n)
	}
	b, err := c.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	return Uint(b, n, order), nil
}

func (c *Cursor) wrapError(n int) error {
	return fmt.Errorf("at position %d: need %d bytes, have %d: %w", c.pos, n, c.Remaining(), ErrShortBuffer)
}
