package bitpack

// Struct is a field-name to value mapping, the unit Encode/Decode/Validate
// operate on. Decode returns one; Validate returns a new, fully validated
// copy rather than mutating its argument.
type Struct map[string]any

// Field pairs a name with a field type. Ordering of a []Field is
// significant: it defines both the bit layout and the value order.
type Field struct {
	Name string
	Type Type
}

// Type is the minimum contract a field type must satisfy. In addition, a
// type must expose at least one decode capability (IntDecoder,
// SignedDecoder or BytesDecoder) and at least one encode capability
// (IntEncoder, SignedEncoder or BytesEncoder); absence of all three on
// either side is a construction-time SpecError.
type Type interface {
	// Bits reports the fixed bit width a field of this type consumes.
	Bits() int
	// String names the type for error messages, e.g. "uint3".
	String() string
	// Matches reports whether v already has this type's canonical runtime
	// form (exact type and in range).
	Matches(v any) bool
}

// Decode capabilities, in strict preference order. The integer forms
// receive the bit-exact value read from the buffer (two's-complement
// interpretation for FromSignedInt, sign bit = MSB of the field); the bytes
// form receives the field's bits repacked left-aligned into a minimal
// ceil(width/8) buffer.
type (
	IntDecoder interface {
		FromInt(u uint64) (any, error)
	}
	SignedDecoder interface {
		FromSignedInt(i int64) (any, error)
	}
	BytesDecoder interface {
		FromBytes(b []byte) (any, error)
	}
)

// Encode capabilities, symmetric to the decode side. ToBytes must return
// exactly ceil(width/8) left-aligned bytes with zero pad bits.
type (
	IntEncoder interface {
		ToInt(v any) (uint64, error)
	}
	SignedEncoder interface {
		ToSignedInt(v any) (int64, error)
	}
	BytesEncoder interface {
		ToBytes(v any) ([]byte, error)
	}
)

// Coercer converts a mismatched runtime value to the type's canonical form
// via the type's ordinary construction path. Distinct from the bit-level
// strategies above; optional.
type Coercer interface {
	Coerce(v any) (any, error)
}

// Raw holds a field value that bypassed type conversion. Decode stores one
// when Options.KeepRaw is set and the decode strategy's conversion fails;
// Encode writes it back unconverted. Value is a uint64, int64 or []byte,
// matching the field's resolved decode strategy.
type Raw struct {
	Bits  int
	Value any
}
