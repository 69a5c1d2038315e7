package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/pdl-runtime/decl"
	"github.com/wippyai/pdl-runtime/field"
	"github.com/wippyai/pdl-runtime/packet"
)

// parseHex accepts "010203", "01 02 03", "01:02:03" and an optional 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.NewReplacer(" ", "", ":", "", "-", "", "\t", "").Replace(s)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}

// parseValue accepts decimal, 0x hex, 0o octal and 0b binary integers, or a
// variant name when the field is an enum.
func parseValue(d *packet.Decl, s string) (uint64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(s, 0, 64)
	if err == nil {
		return v, nil
	}
	if e, ok := enumOf(d); ok {
		if v, ok := e.VariantValue(s); ok {
			return v, nil
		}
	}
	return 0, fmt.Errorf("invalid value %q for %s", s, d.Name)
}

func lookup(reg *decl.Registry, name string) (*packet.Decl, error) {
	d, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("packet %q is not declared (have %s)", name, strings.Join(reg.Names(), ", "))
	}
	return d, nil
}

func decodeHex(reg *decl.Registry, name, input string) (packet.Packet, error) {
	d, err := lookup(reg, name)
	if err != nil {
		return packet.Packet{}, err
	}
	data, err := parseHex(input)
	if err != nil {
		return packet.Packet{}, err
	}
	return d.Parse(data)
}

func encodeValue(reg *decl.Registry, name, input string) (packet.Packet, error) {
	d, err := lookup(reg, name)
	if err != nil {
		return packet.Packet{}, err
	}
	v, err := parseValue(d, input)
	if err != nil {
		return packet.Packet{}, err
	}
	return d.New(v)
}

// describe renders one declaration for -list and the interactive picker.
func describe(d *packet.Decl) string {
	if s, ok := d.Field.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%s.%s (%d bytes)", d.Name, d.Field.FieldName(), d.Size())
}

func formatPacket(p packet.Packet) string {
	return fmt.Sprintf("%s\n  value: %d (%#x)\n  bytes: % x", p, p.Value(), p.Value(), p.Bytes())
}

func enumOf(d *packet.Decl) (field.Enum, bool) {
	e, ok := d.Field.(field.Enum)
	return e, ok
}
