// Package types provides ready-made field types for bitpack codecs:
// fixed-width unsigned and signed integers, enums, constant bit patterns,
// signed fixed-point numbers and fixed-length byte strings.
//
// Constructors are memoized: UInt(8) always returns the same descriptor, so
// two codecs built over UInt(8) share one type identity and Matches/Coerce
// behave consistently across them.
//
// Canonical value forms are uint64 (UInt, Bool, Enum, Const), int64 (SInt),
// float64 (FixedPoint) and []byte (Bytes). Validate coerces ordinary Go
// integers, bools, floats and strings onto these forms.
package types

import (
	"fmt"
	"math"
	"sync"
)

type memoKey struct {
	kind string
	a, b int
	tail string // member list / const value, where applicable
}

var (
	memoMu sync.Mutex
	memo   = make(map[memoKey]any)
)

// intern returns the cached descriptor for k, constructing it once.
func intern[T any](k memoKey, mk func() T) T {
	memoMu.Lock()
	defer memoMu.Unlock()
	if v, ok := memo[k]; ok {
		return v.(T)
	}
	v := mk()
	memo[k] = v
	return v
}

// coerceUint converts the ordinary Go integer kinds (and bool) to uint64.
func coerceUint(v any) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	case int8:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	case int16:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	case int32:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("cannot interpret %T as unsigned integer", v)
	}
}

// coerceInt converts the ordinary Go integer kinds to int64.
func coerceInt(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("cannot interpret %T as signed integer", v)
	}
}

// UIntType is a fixed-width unsigned integer field; canonical value uint64.
type UIntType struct {
	bits int
}

// UInt returns the memoized descriptor for a bits-wide unsigned field.
func UInt(bits int) *UIntType {
	return intern(memoKey{kind: "uint", a: bits}, func() *UIntType {
		return &UIntType{bits: bits}
	})
}

// Bool is a 1-bit unsigned field; true coerces to 1, false to 0.
var Bool = UInt(1)

func (t *UIntType) Bits() int      { return t.bits }
func (t *UIntType) String() string { return fmt.Sprintf("uint%d", t.bits) }

func (t *UIntType) fits(u uint64) bool {
	return t.bits >= 64 || u < 1<<uint(t.bits)
}

func (t *UIntType) Matches(v any) bool {
	u, ok := v.(uint64)
	return ok && t.fits(u)
}

func (t *UIntType) FromInt(u uint64) (any, error) { return u, nil }

func (t *UIntType) ToInt(v any) (uint64, error) {
	u, ok := v.(uint64)
	if !ok {
		return 0, fmt.Errorf("want uint64, got %T", v)
	}
	if !t.fits(u) {
		return 0, fmt.Errorf("value %d does not fit in %d bits", u, t.bits)
	}
	return u, nil
}

func (t *UIntType) Coerce(v any) (any, error) {
	u, err := coerceUint(v)
	if err != nil {
		return nil, err
	}
	if !t.fits(u) {
		return nil, fmt.Errorf("value %d does not fit in %d bits", u, t.bits)
	}
	return u, nil
}

// SIntType is a fixed-width two's-complement signed integer field;
// canonical value int64.
type SIntType struct {
	bits int
}

// SInt returns the memoized descriptor for a bits-wide signed field.
func SInt(bits int) *SIntType {
	return intern(memoKey{kind: "sint", a: bits}, func() *SIntType {
		return &SIntType{bits: bits}
	})
}

func (t *SIntType) Bits() int      { return t.bits }
func (t *SIntType) String() string { return fmt.Sprintf("int%d", t.bits) }

func (t *SIntType) fits(i int64) bool {
	if t.bits >= 64 {
		return true
	}
	return i >= -(1<<uint(t.bits-1)) && i < 1<<uint(t.bits-1)
}

func (t *SIntType) Matches(v any) bool {
	i, ok := v.(int64)
	return ok && t.fits(i)
}

func (t *SIntType) FromSignedInt(i int64) (any, error) { return i, nil }

func (t *SIntType) ToSignedInt(v any) (int64, error) {
	i, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("want int64, got %T", v)
	}
	if !t.fits(i) {
		return 0, fmt.Errorf("value %d does not fit in %d signed bits", i, t.bits)
	}
	return i, nil
}

func (t *SIntType) Coerce(v any) (any, error) {
	i, err := coerceInt(v)
	if err != nil {
		return nil, err
	}
	if !t.fits(i) {
		return nil, fmt.Errorf("value %d does not fit in %d signed bits", i, t.bits)
	}
	return i, nil
}

// EnumType restricts a fixed-width unsigned field to an explicit member
// set; canonical value uint64.
type EnumType struct {
	bits    int
	members map[uint64]struct{}
	label   string
}

// Enum returns the memoized descriptor for a bits-wide field whose value
// must be one of members.
func Enum(bits int, members ...uint64) *EnumType {
	tail := ""
	for _, m := range members {
		tail += fmt.Sprintf("%d,", m)
	}
	return intern(memoKey{kind: "enum", a: bits, tail: tail}, func() *EnumType {
		set := make(map[uint64]struct{}, len(members))
		for _, m := range members {
			set[m] = struct{}{}
		}
		return &EnumType{bits: bits, members: set, label: fmt.Sprintf("enum%d", bits)}
	})
}

func (t *EnumType) Bits() int      { return t.bits }
func (t *EnumType) String() string { return t.label }

func (t *EnumType) member(u uint64) bool {
	_, ok := t.members[u]
	return ok
}

func (t *EnumType) Matches(v any) bool {
	u, ok := v.(uint64)
	return ok && t.member(u)
}

func (t *EnumType) FromInt(u uint64) (any, error) {
	if !t.member(u) {
		return nil, fmt.Errorf("%d is not a member of %s", u, t.label)
	}
	return u, nil
}

func (t *EnumType) ToInt(v any) (uint64, error) {
	u, ok := v.(uint64)
	if !ok {
		return 0, fmt.Errorf("want uint64, got %T", v)
	}
	if !t.member(u) {
		return 0, fmt.Errorf("%d is not a member of %s", u, t.label)
	}
	return u, nil
}

func (t *EnumType) Coerce(v any) (any, error) {
	u, err := coerceUint(v)
	if err != nil {
		return nil, err
	}
	return t.FromInt(u)
}

// ConstType is a fixed bit pattern a field must always carry, e.g. reserved
// bits; canonical value uint64 (always the pattern itself).
type ConstType struct {
	bits  int
	value uint64
}

// Const returns the memoized descriptor for a bits-wide field fixed to
// value.
func Const(bits int, value uint64) *ConstType {
	return intern(memoKey{kind: "const", a: bits, tail: fmt.Sprintf("%d", value)}, func() *ConstType {
		return &ConstType{bits: bits, value: value}
	})
}

// Zero is a single bit that must be clear; One a single bit that must be
// set. Handy for reserved positions in wire headers.
var (
	Zero = Const(1, 0)
	One  = Const(1, 1)
)

func (t *ConstType) Bits() int      { return t.bits }
func (t *ConstType) String() string { return fmt.Sprintf("const%d(%d)", t.bits, t.value) }

func (t *ConstType) Matches(v any) bool {
	u, ok := v.(uint64)
	return ok && u == t.value
}

func (t *ConstType) FromInt(u uint64) (any, error) {
	if u != t.value {
		return nil, fmt.Errorf("expected constant %d, got %d", t.value, u)
	}
	return u, nil
}

func (t *ConstType) ToInt(v any) (uint64, error) {
	u, ok := v.(uint64)
	if !ok || u != t.value {
		return 0, fmt.Errorf("expected constant %d, got %v", t.value, v)
	}
	return u, nil
}

func (t *ConstType) Coerce(v any) (any, error) {
	u, err := coerceUint(v)
	if err != nil {
		return nil, err
	}
	return t.FromInt(u)
}

// FixedPointType is a signed fixed-point number: totalBits of
// two's-complement storage scaled by 2^-fracBits. Canonical value float64.
// ToSignedInt truncates toward zero.
type FixedPointType struct {
	bits int
	frac int
}

// FixedPoint returns the memoized descriptor for a signed fixed-point
// field with totalBits of storage and fracBits fractional bits.
func FixedPoint(totalBits, fracBits int) *FixedPointType {
	return intern(memoKey{kind: "fixed", a: totalBits, b: fracBits}, func() *FixedPointType {
		return &FixedPointType{bits: totalBits, frac: fracBits}
	})
}

func (t *FixedPointType) Bits() int      { return t.bits }
func (t *FixedPointType) String() string { return fmt.Sprintf("fixed%d.%d", t.bits, t.frac) }

func (t *FixedPointType) scale() float64 { return math.Ldexp(1, -t.frac) }

func (t *FixedPointType) fits(f float64) bool {
	raw := f / t.scale()
	return raw >= -math.Ldexp(1, t.bits-1) && raw < math.Ldexp(1, t.bits-1)
}

func (t *FixedPointType) Matches(v any) bool {
	f, ok := v.(float64)
	return ok && t.fits(f)
}

func (t *FixedPointType) FromSignedInt(i int64) (any, error) {
	return float64(i) * t.scale(), nil
}

func (t *FixedPointType) ToSignedInt(v any) (int64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("want float64, got %T", v)
	}
	if !t.fits(f) {
		return 0, fmt.Errorf("value %g does not fit in %s", f, t.String())
	}
	return int64(f / t.scale()), nil
}

func (t *FixedPointType) Coerce(v any) (any, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		i, err := coerceInt(v)
		if err != nil {
			return nil, err
		}
		f = float64(i)
	}
	if !t.fits(f) {
		return nil, fmt.Errorf("value %g does not fit in %s", f, t.String())
	}
	return f, nil
}

// BytesType is a fixed-length opaque byte string; canonical value []byte of
// exactly Size bytes. Width is always a whole number of bytes.
type BytesType struct {
	size int
}

// Bytes returns the memoized descriptor for an n-byte field.
func Bytes(n int) *BytesType {
	return intern(memoKey{kind: "bytes", a: n}, func() *BytesType {
		return &BytesType{size: n}
	})
}

func (t *BytesType) Bits() int      { return t.size * 8 }
func (t *BytesType) Size() int      { return t.size }
func (t *BytesType) String() string { return fmt.Sprintf("bytes%d", t.size) }

func (t *BytesType) Matches(v any) bool {
	b, ok := v.([]byte)
	return ok && len(b) == t.size
}

func (t *BytesType) FromBytes(b []byte) (any, error) {
	if len(b) != t.size {
		return nil, fmt.Errorf("want %d bytes, got %d", t.size, len(b))
	}
	out := make([]byte, t.size)
	copy(out, b)
	return out, nil
}

func (t *BytesType) ToBytes(v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("want []byte, got %T", v)
	}
	if len(b) != t.size {
		return nil, fmt.Errorf("want %d bytes, got %d", t.size, len(b))
	}
	return b, nil
}

func (t *BytesType) Coerce(v any) (any, error) {
	switch b := v.(type) {
	case []byte:
		if len(b) != t.size {
			return nil, fmt.Errorf("want %d bytes, got %d", t.size, len(b))
		}
		return b, nil
	case string:
		if len(b) != t.size {
			return nil, fmt.Errorf("want %d bytes, got %d", t.size, len(b))
		}
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("cannot interpret %T as %d bytes", v, t.size)
	}
}
