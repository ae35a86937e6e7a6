// Package bitpack implements a declarative bit-level struct codec: an ordered
// list of named, typed fields - each consuming a fixed, possibly
// non-byte-multiple, number of bits - is packed into a minimal contiguous
// byte buffer and unpacked back, with optional type validation/coercion.
//
// Components:
//   - Codec: compiled from []Field at construction; Encode/Decode/Validate.
//   - Type: the capability contract a field type implements (bit width plus
//     at least one encode and one decode strategy; see field.go).
//   - types: ready-made field types (UInt, SInt, Bool, Enum, Const,
//     FixedPoint, Bytes).
//   - registry: named, versioned schema catalog over pluggable byte stores.
//
// Bit layout is left-aligned: the first field occupies the most-significant
// bits of the first byte, and unused trailing bits of the final byte are
// zero. Encoded length is exactly ceil(sum of field widths / 8) bytes.
//
// Strategy selection happens once, at New(), per field:
//
//	decode: FromInt > FromSignedInt > FromBytes
//	encode: ToInt   > ToSignedInt   > ToBytes
//
// A Codec is immutable after New and safe for concurrent use as long as
// callers operate on independent Struct values.
package bitpack
