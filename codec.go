package bitpack

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/bitpack/internal/bits"
)

// Codec packs and unpacks a flat ordered field list. Immutable after New;
// safe for concurrent use on independent Struct values.
type Codec struct {
	fields    []boundField
	index     map[string]int
	totalBits int
	log       Logger
	keepRaw   bool
}

// BitSize returns the sum of all field widths.
func (c *Codec) BitSize() int { return c.totalBits }

// Size returns the encoded length in bytes: ceil(BitSize/8).
func (c *Codec) Size() int { return (c.totalBits + 7) / 8 }

// Names returns the field names in declaration order.
func (c *Codec) Names() []string {
	out := make([]string, len(c.fields))
	for i, f := range c.fields {
		out[i] = f.name
	}
	return out
}

// Validate checks every field of s against its declared type, in order.
// With coerce set, mismatched values are converted via the type's Coerce
// path. The result is a NEW Struct holding only declared fields; s is never
// mutated. All failures are collected and returned together as a single
// *ValidationError.
func (c *Codec) Validate(s Struct, coerce bool) (Struct, error) {
	out := make(Struct, len(c.fields))
	var fails []FieldFailure

	for _, f := range c.fields {
		v, ok := s[f.name]
		if !ok {
			fails = append(fails, FieldFailure{Field: f.name, Want: f.typ.String(), Err: errMissingField})
			continue
		}
		if _, isRaw := v.(Raw); isRaw {
			// Raw bypassed conversion on decode; it bypasses checking here.
			out[f.name] = v
			continue
		}
		if f.typ.Matches(v) {
			out[f.name] = v
			continue
		}
		if !coerce {
			fails = append(fails, FieldFailure{Field: f.name, Want: f.typ.String(), Value: v})
			continue
		}
		co, ok := f.typ.(Coercer)
		if !ok {
			fails = append(fails, FieldFailure{Field: f.name, Want: f.typ.String(), Value: v, Err: errNotCoercible})
			continue
		}
		cv, err := co.Coerce(v)
		if err != nil {
			fails = append(fails, FieldFailure{Field: f.name, Want: f.typ.String(), Value: v, Err: err})
			continue
		}
		out[f.name] = cv
	}

	if len(fails) > 0 {
		return nil, &ValidationError{Failures: fails}
	}
	return out, nil
}

var (
	errMissingField = errors.New("field missing from struct")
	errNotCoercible = errors.New("type has no coercion path")
)

// Encode validates s (coercion enabled) and packs the fields in declared
// order into a fresh buffer of exactly Size() bytes, trailing pad bits
// zero.
func (c *Codec) Encode(s Struct) ([]byte, error) {
	vs, err := c.Validate(s, true)
	if err != nil {
		return nil, err
	}

	var w bits.Writer
	for _, f := range c.fields {
		if err := c.encodeField(&w, f, vs[f.name]); err != nil {
			return nil, err
		}
	}
	return w.Finish(), nil
}

func (c *Codec) encodeField(w *bits.Writer, f boundField, v any) error {
	if raw, ok := v.(Raw); ok {
		return c.encodeRaw(w, f, raw)
	}

	switch f.encKind {
	case encodeInt:
		u, err := f.encInt.ToInt(v)
		if err != nil {
			return &EncodingError{Field: f.name, Reason: "to_int strategy failed", Cause: err}
		}
		return c.writeUint(w, f, u)

	case encodeSigned:
		i, err := f.encSigned.ToSignedInt(v)
		if err != nil {
			return &EncodingError{Field: f.name, Reason: "to_signed_int strategy failed", Cause: err}
		}
		u, ok := signedToBits(i, f.bits)
		if !ok {
			return &EncodingError{Field: f.name, Reason: fmt.Sprintf("value %d overflows %d-bit signed field", i, f.bits)}
		}
		return c.writeUint(w, f, u)

	default: // encodeBytes
		b, err := f.encBytes.ToBytes(v)
		if err != nil {
			return &EncodingError{Field: f.name, Reason: "to_bytes strategy failed", Cause: err}
		}
		return c.writeBytes(w, f, b)
	}
}

func (c *Codec) encodeRaw(w *bits.Writer, f boundField, raw Raw) error {
	switch v := raw.Value.(type) {
	case uint64:
		return c.writeUint(w, f, v)
	case int64:
		u, ok := signedToBits(v, f.bits)
		if !ok {
			return &EncodingError{Field: f.name, Reason: fmt.Sprintf("raw value %d overflows %d-bit signed field", v, f.bits)}
		}
		return c.writeUint(w, f, u)
	case []byte:
		return c.writeBytes(w, f, v)
	default:
		return &EncodingError{Field: f.name, Reason: fmt.Sprintf("unsupported raw value type %T", raw.Value)}
	}
}

func (c *Codec) writeUint(w *bits.Writer, f boundField, u uint64) error {
	if err := w.WriteBits(u, f.bits); err != nil {
		if errors.Is(err, bits.ErrOverflow) {
			return &EncodingError{Field: f.name, Reason: fmt.Sprintf("value %d overflows %d-bit field", u, f.bits)}
		}
		return &EncodingError{Field: f.name, Reason: "bit write failed", Cause: err}
	}
	return nil
}

// writeBytes appends a left-aligned byte chunk of exactly ceil(width/8)
// bytes, splitting the trailing partial byte as needed.
func (c *Codec) writeBytes(w *bits.Writer, f boundField, b []byte) error {
	if want := (f.bits + 7) / 8; len(b) != want {
		return &EncodingError{Field: f.name, Reason: fmt.Sprintf("to_bytes returned %d bytes, want %d for %d bits", len(b), want, f.bits)}
	}
	full, rem := f.bits/8, f.bits%8
	for i := 0; i < full; i++ {
		if err := w.WriteBits(uint64(b[i]), 8); err != nil {
			return &EncodingError{Field: f.name, Reason: "bit write failed", Cause: err}
		}
	}
	if rem > 0 {
		last := b[full]
		if last&(0xFF>>uint(rem)) != 0 {
			return &EncodingError{Field: f.name, Reason: fmt.Sprintf("to_bytes chunk has non-zero pad bits below width %d", f.bits)}
		}
		if err := w.WriteBits(uint64(last>>uint(8-rem)), rem); err != nil {
			return &EncodingError{Field: f.name, Reason: "bit write failed", Cause: err}
		}
	}
	return nil
}

// Decode unpacks an exact-length buffer: short and over-long inputs both
// fail with *DecodingError. Use DecodeNext for buffers carrying trailing
// data.
func (c *Codec) Decode(b []byte) (Struct, error) {
	need := c.Size()
	if len(b) < need {
		return nil, &DecodingError{Reason: fmt.Sprintf("short input: got %d bytes, need %d", len(b), need)}
	}
	if len(b) > need {
		return nil, &DecodingError{Reason: fmt.Sprintf("trailing input: got %d bytes, want %d", len(b), need)}
	}
	return c.decode(b)
}

// DecodeNext unpacks the leading Size() bytes of b and returns the
// untouched remainder, so callers can pull consecutive structs out of one
// buffer.
func (c *Codec) DecodeNext(b []byte) (Struct, []byte, error) {
	need := c.Size()
	if len(b) < need {
		return nil, nil, &DecodingError{Reason: fmt.Sprintf("short input: got %d bytes, need %d", len(b), need)}
	}
	s, err := c.decode(b[:need])
	if err != nil {
		return nil, nil, err
	}
	return s, b[need:], nil
}

func (c *Codec) decode(b []byte) (Struct, error) {
	r := bits.NewReader(b)
	out := make(Struct, len(c.fields))
	for _, f := range c.fields {
		v, err := c.decodeField(r, f)
		if err != nil {
			return nil, err
		}
		out[f.name] = v
	}
	return out, nil
}

func (c *Codec) decodeField(r *bits.Reader, f boundField) (any, error) {
	switch f.decKind {
	case decodeInt:
		u, err := r.ReadBits(f.bits)
		if err != nil {
			return nil, &DecodingError{Field: f.name, Reason: "bit read failed", Cause: err}
		}
		v, err := f.decInt.FromInt(u)
		if err != nil {
			return c.keepOrFail(f, u, "from_int", err)
		}
		return v, nil

	case decodeSigned:
		u, err := r.ReadBits(f.bits)
		if err != nil {
			return nil, &DecodingError{Field: f.name, Reason: "bit read failed", Cause: err}
		}
		i := signExtend(u, f.bits)
		v, err := f.decSigned.FromSignedInt(i)
		if err != nil {
			return c.keepOrFail(f, i, "from_signed_int", err)
		}
		return v, nil

	default: // decodeBytes
		chunk, err := c.readBytes(r, f)
		if err != nil {
			return nil, err
		}
		v, err := f.decBytes.FromBytes(chunk)
		if err != nil {
			return c.keepOrFail(f, chunk, "from_bytes", err)
		}
		return v, nil
	}
}

// keepOrFail applies the KeepRaw policy to a failed strategy conversion.
func (c *Codec) keepOrFail(f boundField, bitsValue any, strategy string, err error) (any, error) {
	if c.keepRaw {
		c.log.Debug("decode kept raw value", Fields{"field": f.name, "strategy": strategy, "err": err})
		return Raw{Bits: f.bits, Value: bitsValue}, nil
	}
	return nil, &DecodingError{Field: f.name, Reason: strategy + " strategy failed", Cause: err}
}

// readBytes repacks the field's bits left-aligned into its own minimal
// buffer, independent of the field's position within the larger stream.
func (c *Codec) readBytes(r *bits.Reader, f boundField) ([]byte, error) {
	full, rem := f.bits/8, f.bits%8
	out := make([]byte, (f.bits+7)/8)
	for i := 0; i < full; i++ {
		u, err := r.ReadBits(8)
		if err != nil {
			return nil, &DecodingError{Field: f.name, Reason: "bit read failed", Cause: err}
		}
		out[i] = byte(u)
	}
	if rem > 0 {
		u, err := r.ReadBits(rem)
		if err != nil {
			return nil, &DecodingError{Field: f.name, Reason: "bit read failed", Cause: err}
		}
		out[full] = byte(u << uint(8-rem))
	}
	return out, nil
}
