// Package field implements the codecs for single declared fields.
//
// Scalar is the one parameterized codec for an unsigned integer of 1 to 8
// bytes in either byte order; generated packets reuse it instead of carrying
// a hand-expanded copy per width and byte order. Enum and Constrained wrap a
// Scalar and add value checks; Array handles fixed-size scalar elements.
//
// Every codec follows the same contract:
//
//   - Conforms is a cheap length check used for variant dispatch.
//   - Parse reads from a wire.Cursor and only advances it on success.
//   - Write appends exactly Size() bytes, or returns an error.
//   - Check validates a value before it is stored in a record.
//
// All failures are *errors.Error values from the pdl-runtime errors package.
package field
