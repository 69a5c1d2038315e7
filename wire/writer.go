package wire

import (
	"bytes"
	"fmt"
)

// Writer accumulates the canonical encoding of a packet.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// NewWriterSize creates a Writer with capacity for n bytes.
func NewWriterSize(n int) *Writer {
	return &Writer{buf: bytes.NewBuffer(make([]byte, 0, n))}
}

// NewWriterBuffer creates a Writer appending to dst.
func NewWriterBuffer(dst []byte) *Writer {
	return &Writer{buf: bytes.NewBuffer(dst)}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteUint writes the low n bytes of v in the given order. Bits above
// 8n are the caller's responsibility; field codecs range-check first.
func (w *Writer) WriteUint(v uint64, n int, order ByteOrder) error {
	if n < 1 || n > MaxWidth {
		return fmt.Errorf("wire: invalid integer width %d", n)
	}
	var tmp [MaxWidth]byte
	PutUint(tmp[:n], v, n, order)
	w.buf.Write(tmp[:n])
	return nil
}
