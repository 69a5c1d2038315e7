package pdlruntime

// Packet is implemented by every generated packet handle.
type Packet interface {
	// Size returns the declared encoded size in bytes.
	Size() int
	// Bytes returns the canonical encoding, exactly Size() bytes long.
	Bytes() []byte
	// AppendTo appends the canonical encoding to dst.
	AppendTo(dst []byte) []byte
}

