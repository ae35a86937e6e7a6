package bitpack

import "fmt"

type decodeKind uint8

const (
	decodeInt decodeKind = iota
	decodeSigned
	decodeBytes
)

type encodeKind uint8

const (
	encodeInt encodeKind = iota
	encodeSigned
	encodeBytes
)

// boundField is a Field with its strategies resolved and cached. Selection
// happens once, at New; it is never re-evaluated per call.
type boundField struct {
	name   string
	typ    Type
	bits   int
	offset int // cumulative bit offset within the struct

	decKind decodeKind
	encKind encodeKind

	decInt    IntDecoder
	decSigned SignedDecoder
	decBytes  BytesDecoder
	encInt    IntEncoder
	encSigned SignedEncoder
	encBytes  BytesEncoder
}

// bindField queries the field type's capabilities and picks the fastest
// available strategy per side: int > signed int > bytes, encode and decode
// selected independently.
func bindField(f Field, offset int) (boundField, error) {
	if f.Name == "" {
		return boundField{}, &SpecError{Reason: "empty field name"}
	}
	if f.Type == nil {
		return boundField{}, &SpecError{Field: f.Name, Reason: "nil field type"}
	}
	width := f.Type.Bits()
	if width <= 0 {
		return boundField{}, &SpecError{Field: f.Name, Reason: fmt.Sprintf("non-positive bit width %d", width)}
	}

	b := boundField{name: f.Name, typ: f.Type, bits: width, offset: offset}

	switch t := f.Type.(type) {
	case IntDecoder:
		b.decKind, b.decInt = decodeInt, t
	case SignedDecoder:
		b.decKind, b.decSigned = decodeSigned, t
	case BytesDecoder:
		b.decKind, b.decBytes = decodeBytes, t
	default:
		return boundField{}, &SpecError{Field: f.Name, Reason: "type exposes no decode capability (FromInt/FromSignedInt/FromBytes)"}
	}

	switch t := f.Type.(type) {
	case IntEncoder:
		b.encKind, b.encInt = encodeInt, t
	case SignedEncoder:
		b.encKind, b.encSigned = encodeSigned, t
	case BytesEncoder:
		b.encKind, b.encBytes = encodeBytes, t
	default:
		return boundField{}, &SpecError{Field: f.Name, Reason: "type exposes no encode capability (ToInt/ToSignedInt/ToBytes)"}
	}

	// Integer strategies ride through a single 64-bit cursor transfer; only
	// the bytes path can span wider fields.
	if width > 64 && (b.decKind != decodeBytes || b.encKind != encodeBytes) {
		return boundField{}, &SpecError{Field: f.Name, Reason: fmt.Sprintf("width %d exceeds 64 bits but type is not bytes-capable on both sides", width)}
	}

	return b, nil
}

// signExtend reinterprets the width-bit unsigned value u as two's
// complement. The sign bit is the most significant bit of the field.
func signExtend(u uint64, width int) int64 {
	if width < 64 && u&(1<<uint(width-1)) != 0 {
		return int64(u) - (1 << uint(width))
	}
	return int64(u)
}

// signedToBits converts i to its width-bit two's-complement pattern,
// reporting false when i does not fit.
func signedToBits(i int64, width int) (uint64, bool) {
	if width < 64 {
		lo := int64(-1) << uint(width-1)
		hi := int64(1)<<uint(width-1) - 1
		if i < lo || i > hi {
			return 0, false
		}
		return uint64(i) & (1<<uint(width) - 1), true
	}
	return uint64(i), true
}
