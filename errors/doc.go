// Package errors provides the structured error taxonomy shared by every codec
// in pdl-runtime.
//
// Errors are categorized by Phase (parse, build, serialize, declare) and Kind.
// The set of kinds is closed and mirrors what generated packet code can
// report: invalid_packet, constraint_out_of_bounds, invalid_length,
// invalid_array_size, impossible_struct and invalid_enum_value. Each Error
// carries the object and field name plus the expected and actual values, so a
// diagnostic never requires re-reading the declaration.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindInvalidLength).
//		Obj("Foo").
//		Lengths(3, 2).
//		Build()
//
// Or the convenience constructors:
//
//	err := errors.InvalidLength("Foo", 3, 2)
//	err := errors.InvalidEnumValue("Foo", "color", 7, "Color")
//
// Match kinds with the package sentinels:
//
//	if errors.Is(err, pdlerrors.ErrInvalidLength) { ... }
package errors
