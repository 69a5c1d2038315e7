// Package decl loads packet declarations from TOML files.
//
// A declaration file lists single-field packets:
//
//	default_byte_order = "little_endian"
//
//	[[packet]]
//	name = "Foo"
//	field = "x"
//	bits = 24
//
//	[[packet]]
//	name = "Paint"
//	field = "color"
//	bits = 8
//	byte_order = "big_endian"
//	enum = "Color"
//	variants = { Red = 1, Green = 2 }
//
//	[[packet]]
//	name = "Level"
//	field = "v"
//	width = 1
//	min = 1
//	max = 10
package decl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/wippyai/pdl-runtime/field"
	"github.com/wippyai/pdl-runtime/packet"
	"github.com/wippyai/pdl-runtime/wire"
)

type fileConfig struct {
	DefaultByteOrder string         `toml:"default_byte_order"`
	Packets          []packetConfig `toml:"packet"`
}

type packetConfig struct {
	Name      string            `toml:"name"`
	Field     string            `toml:"field"`
	Bits      int               `toml:"bits"`
	Width     int               `toml:"width"`
	ByteOrder string            `toml:"byte_order"`
	Enum      string            `toml:"enum"`
	Variants  map[string]uint64 `toml:"variants"`
	Min       *uint64           `toml:"min"`
	Max       *uint64           `toml:"max"`
}

// Registry holds declarations by packet name.
type Registry struct {
	decls map[string]*packet.Decl
	names []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decls: make(map[string]*packet.Decl)}
}

// Builtin returns a registry holding the generated packets of this module.
func Builtin() *Registry {
	r := NewRegistry()
	r.mustAdd(packet.FooDecl())
	return r
}

func (r *Registry) mustAdd(d *packet.Decl) {
	if err := r.Add(d); err != nil {
		panic(err)
	}
}

// Add registers d. Names must be unique.
func (r *Registry) Add(d *packet.Decl) error {
	if _, exists := r.decls[d.Name]; exists {
		return fmt.Errorf("decl: packet %q declared twice", d.Name)
	}
	r.decls[d.Name] = d
	r.names = append(r.names, d.Name)
	return nil
}

// Lookup returns the declaration named name.
func (r *Registry) Lookup(name string) (*packet.Decl, bool) {
	d, ok := r.decls[name]
	return d, ok
}

// Names returns the declared packet names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of declarations.
func (r *Registry) Len() int {
	return len(r.names)
}

// LoadFile reads a declaration file.
func LoadFile(path string) (*Registry, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load declarations: %w", err)
	}
	r, err := build(raw, meta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	Logger().Info("loaded declarations",
		zap.String("path", path),
		zap.Strings("packets", r.Names()))
	return r, nil
}

// Parse reads declarations from TOML text.
func Parse(data string) (*Registry, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("parse declarations: %w", err)
	}
	return build(raw, meta)
}

func build(raw fileConfig, meta toml.MetaData) (*Registry, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	order := wire.LittleEndian
	if meta.IsDefined("default_byte_order") {
		o, err := wire.ParseByteOrder(raw.DefaultByteOrder)
		if err != nil {
			return nil, err
		}
		order = o
	}

	r := NewRegistry()
	for i, pc := range raw.Packets {
		d, err := pc.decl(order)
		if err != nil {
			return nil, fmt.Errorf("packet %d (%s): %w", i, pc.Name, err)
		}
		if err := r.Add(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (pc packetConfig) decl(defaultOrder wire.ByteOrder) (*packet.Decl, error) {
	name := strings.TrimSpace(pc.Name)
	if name == "" {
		return nil, fmt.Errorf("missing name")
	}
	fieldName := strings.TrimSpace(pc.Field)
	if fieldName == "" {
		return nil, fmt.Errorf("missing field")
	}

	order := defaultOrder
	if pc.ByteOrder != "" {
		o, err := wire.ParseByteOrder(pc.ByteOrder)
		if err != nil {
			return nil, err
		}
		order = o
	}

	var (
		s   field.Scalar
		err error
	)
	switch {
	case pc.Bits > 0 && pc.Width > 0 && field.WidthForBits(pc.Bits) != pc.Width:
		return nil, fmt.Errorf("bits %d and width %d disagree", pc.Bits, pc.Width)
	case pc.Bits > 0:
		s, err = field.FromBits(name, fieldName, pc.Bits, order)
	case pc.Width > 0:
		s, err = field.NewScalar(name, fieldName, pc.Width, order)
	default:
		return nil, fmt.Errorf("one of bits or width is required")
	}
	if err != nil {
		return nil, err
	}

	hasRange := pc.Min != nil || pc.Max != nil
	switch {
	case pc.Enum != "" && hasRange:
		return nil, fmt.Errorf("enum fields cannot declare min/max")
	case pc.Enum != "":
		return enumDecl(name, s, pc.Enum, pc.Variants)
	case len(pc.Variants) > 0:
		return nil, fmt.Errorf("variants require an enum type name")
	case hasRange:
		lo, hi := uint64(0), s.Max()
		if pc.Min != nil {
			lo = *pc.Min
		}
		if pc.Max != nil {
			hi = *pc.Max
		}
		c, err := field.NewConstrained(s, lo, hi)
		if err != nil {
			return nil, err
		}
		return packet.NewDecl(name, c)
	}
	return packet.NewDecl(name, s)
}

func enumDecl(name string, s field.Scalar, typ string, variants map[string]uint64) (*packet.Decl, error) {
	names := make([]string, 0, len(variants))
	for n := range variants {
		names = append(names, n)
	}
	sort.Strings(names)

	byValue := make(map[uint64]string, len(variants))
	for _, n := range names {
		v := variants[n]
		if prev, dup := byValue[v]; dup {
			return nil, fmt.Errorf("enum %s: %s and %s share value %d", typ, prev, n, v)
		}
		byValue[v] = n
	}
	e, err := field.NewEnum(s, typ, byValue)
	if err != nil {
		return nil, err
	}
	return packet.NewDecl(name, e)
}
