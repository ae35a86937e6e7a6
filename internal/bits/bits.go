// Package bits moves arbitrary-width bit chunks into and out of a byte
// buffer without byte-alignment assumptions. Layout is left-aligned: the
// first bit written lands in the most-significant unused bit position, so
// writing 0b101/3 then 0b01001/5 yields the single byte 0b10101001.
package bits

import "errors"

var (
	ErrWidth    = errors.New("bitpack: bit width out of range [1,64]")
	ErrOverflow = errors.New("bitpack: value has bits set above its width")
	ErrFinished = errors.New("bitpack: write after Finish")
	ErrShort    = errors.New("bitpack: not enough bits left in buffer")
)

// Writer accumulates left-aligned bit chunks into a growing byte buffer.
// The zero value is ready to use.
type Writer struct {
	buf  []byte
	free int // unused low bits in the last byte of buf
	done bool
}

// WriteBits appends the low width bits of v, left-aligned, advancing the
// cursor by width. Bits of v above width must be zero; a non-zero high bit
// is a caller bug and fails fast with ErrOverflow.
func (w *Writer) WriteBits(v uint64, width int) error {
	if w.done {
		return ErrFinished
	}
	if width < 1 || width > 64 {
		return ErrWidth
	}
	if width < 64 && v>>uint(width) != 0 {
		return ErrOverflow
	}
	for width > 0 {
		if w.free == 0 {
			w.buf = append(w.buf, 0)
			w.free = 8
		}
		n := w.free
		if width < n {
			n = width
		}
		// Most-significant n bits of the remaining chunk, placed into the
		// highest free positions of the last byte.
		chunk := byte(v>>uint(width-n)) & (0xFF >> uint(8-n))
		w.buf[len(w.buf)-1] |= chunk << uint(w.free-n)
		w.free -= n
		width -= n
	}
	return nil
}

// Bits returns the number of bits written so far.
func (w *Writer) Bits() int { return len(w.buf)*8 - w.free }

// Finish zero-pads the trailing byte and returns the accumulated buffer.
// Further writes fail with ErrFinished. Idempotent.
func (w *Writer) Finish() []byte {
	// Pad bits are already zero: bytes are appended zeroed and only OR-ed.
	w.done = true
	return w.buf
}

// Reader consumes left-aligned bit chunks from a byte buffer.
type Reader struct {
	buf []byte
	off int // global bit offset
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// ReadBits consumes width bits starting at the current offset and returns
// them right-justified. Fails with ErrShort when fewer than width bits
// remain.
func (r *Reader) ReadBits(width int) (uint64, error) {
	if width < 1 || width > 64 {
		return 0, ErrWidth
	}
	if r.Remaining() < width {
		return 0, ErrShort
	}
	var v uint64
	for width > 0 {
		b := r.buf[r.off/8]
		avail := 8 - r.off%8
		n := avail
		if width < n {
			n = width
		}
		chunk := (b >> uint(avail-n)) & (0xFF >> uint(8-n))
		v = v<<uint(n) | uint64(chunk)
		r.off += n
		width -= n
	}
	return v, nil
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int { return len(r.buf)*8 - r.off }

// Offset returns the current global bit offset.
func (r *Reader) Offset() int { return r.off }
