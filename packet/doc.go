// Package packet implements the handle, record and builder contract of
// generated single-field packets.
//
// A Decl names a packet and the codec of its field. Packets are produced in
// two ways:
//
//	p, err := decl.Parse(buf)                         // bytes -> record
//	p, err := packet.Builder{Decl: decl, Value: v}.Build() // value -> record
//
// Both paths validate the value, so every Packet holds a value its codec can
// encode and Bytes never fails. A Packet is a small value: copying it copies
// the handle and shares the underlying record, which is never mutated and is
// safe to read from any goroutine.
//
// Foo is the generated form of
//
//	packet Foo {
//	  x : 24,
//	}
//
// declared little-endian, with typed accessors on top of the generic handle.
package packet
