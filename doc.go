// Package pdlruntime is the runtime contract behind packets generated from a
// packet description language (PDL).
//
// A PDL compiler turns a declaration such as
//
//	little_endian_packets
//
//	packet Foo {
//	  x : 24,
//	}
//
// into a packet type that can be parsed from bytes, built from values and
// serialized back to its canonical encoding. This module provides the pieces
// that generated code is built from:
//
//	pdlruntime/          Root package with the Packet interface
//	├── errors/          Structured error taxonomy shared by all codecs
//	├── wire/            Cursor, Writer and byte order primitives
//	├── field/           Parameterized field codecs (scalar, enum, range, array)
//	├── packet/          Immutable records, handles, builders and Foo
//	├── decl/            TOML declaration files loaded into packet.Decl
//	└── cmd/pdlc/        Command-line decoder/encoder with an interactive mode
//
// # Quick Start
//
//	foo, err := packet.ParseFoo([]byte{0x01, 0x02, 0x03})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(foo.X()) // 197121
//
//	b, err := packet.FooBuilder{X: 0x030201}.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("% x\n", b.Bytes()) // 01 02 03
//
// # Errors
//
// Every failure is an *errors.Error with a Phase and a Kind. Parse errors
// report the object and field name together with the expected and actual
// lengths or values. Builders reject out-of-range values up front, so
// serializing a packet never fails.
//
// # Thread Safety
//
// Packet handles are immutable and safe for concurrent use. Copying a handle
// shares the underlying record. Cursors and Writers are not thread-safe.
package pdlruntime
