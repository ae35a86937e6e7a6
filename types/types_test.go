package types

import (
	"bytes"
	"testing"
)

func TestConstructorsAreMemoized(t *testing.T) {
	if UInt(8) != UInt(8) {
		t.Fatal("UInt(8) not interned")
	}
	if UInt(8) == UInt(9) {
		t.Fatal("distinct widths share a descriptor")
	}
	if SInt(6) != SInt(6) {
		t.Fatal("SInt(6) not interned")
	}
	if Enum(2, 0, 3) != Enum(2, 0, 3) {
		t.Fatal("Enum not interned")
	}
	if Const(4, 0xA) != Const(4, 0xA) {
		t.Fatal("Const not interned")
	}
	if FixedPoint(16, 8) != FixedPoint(16, 8) {
		t.Fatal("FixedPoint not interned")
	}
	if FixedPoint(16, 8) == FixedPoint(16, 4) {
		t.Fatal("distinct fractional widths share a descriptor")
	}
	if Bytes(4) != Bytes(4) {
		t.Fatal("Bytes not interned")
	}
}

func TestUIntRange(t *testing.T) {
	u3 := UInt(3)
	if !u3.Matches(uint64(7)) {
		t.Fatal("7 should fit in 3 bits")
	}
	if u3.Matches(uint64(8)) {
		t.Fatal("8 must not fit in 3 bits")
	}
	if _, err := u3.ToInt(uint64(8)); err == nil {
		t.Fatal("ToInt accepted out-of-range value")
	}

	u64 := UInt(64)
	if !u64.Matches(uint64(0xFFFFFFFFFFFFFFFF)) {
		t.Fatal("max uint64 should fit in 64 bits")
	}
}

func TestUIntCoerce(t *testing.T) {
	u8 := UInt(8)
	cases := []struct {
		in   any
		want uint64
	}{
		{uint64(200), 200},
		{int(42), 42},
		{int32(7), 7},
		{uint16(255), 255},
		{true, 1},
		{false, 0},
	}
	for _, tc := range cases {
		got, err := u8.Coerce(tc.in)
		if err != nil {
			t.Fatalf("Coerce(%T %v): %v", tc.in, tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Coerce(%v) = %v, want %d", tc.in, got, tc.want)
		}
	}

	for _, in := range []any{int(-1), int(256), "200", 3.5} {
		if _, err := u8.Coerce(in); err == nil {
			t.Fatalf("Coerce(%T %v) should fail", in, in)
		}
	}
}

func TestBoolIsOneBitUInt(t *testing.T) {
	if Bool != UInt(1) {
		t.Fatal("Bool must alias UInt(1)")
	}
	v, err := Bool.Coerce(true)
	if err != nil || v != uint64(1) {
		t.Fatalf("Coerce(true) = %v, %v", v, err)
	}
}

func TestSIntRangeAndCoerce(t *testing.T) {
	s4 := SInt(4)
	for _, i := range []int64{-8, -1, 0, 7} {
		if !s4.Matches(i) {
			t.Fatalf("%d should fit in signed 4 bits", i)
		}
	}
	for _, i := range []int64{-9, 8} {
		if s4.Matches(i) {
			t.Fatalf("%d must not fit in signed 4 bits", i)
		}
		if _, err := s4.ToSignedInt(i); err == nil {
			t.Fatalf("ToSignedInt(%d) should fail", i)
		}
	}

	got, err := s4.Coerce(int(-3))
	if err != nil || got != int64(-3) {
		t.Fatalf("Coerce(-3) = %v, %v", got, err)
	}
	if _, err := s4.Coerce("x"); err == nil {
		t.Fatal("Coerce(string) should fail")
	}
}

func TestEnumMembership(t *testing.T) {
	e := Enum(3, 1, 2, 5)
	for _, m := range []uint64{1, 2, 5} {
		if v, err := e.FromInt(m); err != nil || v != m {
			t.Fatalf("FromInt(%d) = %v, %v", m, v, err)
		}
	}
	if _, err := e.FromInt(3); err == nil {
		t.Fatal("3 is not a member")
	}
	if _, err := e.ToInt(uint64(4)); err == nil {
		t.Fatal("4 is not a member")
	}
	if v, err := e.Coerce(int(5)); err != nil || v != uint64(5) {
		t.Fatalf("Coerce(5) = %v, %v", v, err)
	}
}

func TestConstPinsValue(t *testing.T) {
	c := Const(4, 0xA)
	if v, err := c.FromInt(0xA); err != nil || v != uint64(0xA) {
		t.Fatalf("FromInt = %v, %v", v, err)
	}
	if _, err := c.FromInt(0xB); err == nil {
		t.Fatal("wrong pattern accepted")
	}
	if _, err := c.ToInt(uint64(0xB)); err == nil {
		t.Fatal("wrong pattern accepted on encode")
	}

	if !Zero.Matches(uint64(0)) || Zero.Matches(uint64(1)) {
		t.Fatal("Zero must pin 0")
	}
	if !One.Matches(uint64(1)) || One.Matches(uint64(0)) {
		t.Fatal("One must pin 1")
	}
}

func TestFixedPointScaling(t *testing.T) {
	fp := FixedPoint(16, 8)

	raw, err := fp.ToSignedInt(1.5)
	if err != nil || raw != 384 {
		t.Fatalf("ToSignedInt(1.5) = %d, %v want 384", raw, err)
	}
	v, err := fp.FromSignedInt(-384)
	if err != nil || v != -1.5 {
		t.Fatalf("FromSignedInt(-384) = %v, %v want -1.5", v, err)
	}

	// Truncation toward zero below the representable step.
	raw, err = fp.ToSignedInt(0.999 / 256)
	if err != nil || raw != 0 {
		t.Fatalf("sub-step value = %d, %v want 0", raw, err)
	}

	// 2^7 is the first positive value out of range for 16.8.
	if _, err := fp.ToSignedInt(128.0); err == nil {
		t.Fatal("128.0 should overflow fixed16.8")
	}
	if fp.Matches(128.0) || !fp.Matches(-128.0) {
		t.Fatal("range must be [-128, 128)")
	}

	if v, err := fp.Coerce(int(2)); err != nil || v != 2.0 {
		t.Fatalf("Coerce(2) = %v, %v", v, err)
	}
	if v, err := fp.Coerce(float32(0.5)); err != nil || v != 0.5 {
		t.Fatalf("Coerce(float32) = %v, %v", v, err)
	}
}

func TestBytesCopiesOnDecode(t *testing.T) {
	bt := Bytes(3)
	if bt.Bits() != 24 || bt.Size() != 3 {
		t.Fatalf("Bits=%d Size=%d", bt.Bits(), bt.Size())
	}

	src := []byte{1, 2, 3}
	v, err := bt.FromBytes(src)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	src[0] = 9
	if got := v.([]byte); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("decoded value aliases input: %v", got)
	}

	if _, err := bt.FromBytes([]byte{1}); err == nil {
		t.Fatal("short input accepted")
	}
	if _, err := bt.ToBytes([]byte{1, 2, 3, 4}); err == nil {
		t.Fatal("long input accepted")
	}
}

func TestBytesCoerceFromString(t *testing.T) {
	bt := Bytes(3)
	v, err := bt.Coerce("abc")
	if err != nil || !bytes.Equal(v.([]byte), []byte("abc")) {
		t.Fatalf("Coerce(string) = %v, %v", v, err)
	}
	if _, err := bt.Coerce("ab"); err == nil {
		t.Fatal("wrong-length string accepted")
	}
	if _, err := bt.Coerce(42); err == nil {
		t.Fatal("int accepted")
	}
}
