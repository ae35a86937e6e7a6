// Package wire frames schema documents for storage: a fixed header binding
// the payload to its schema version, so stale store entries are detectable
// on read.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version    byte = 1
	kindSchema byte = 1
)

var (
	ErrCorrupt = errors.New("bitpack: corrupt stored schema")
	magic4     = [...]byte{'B', 'P', 'S', 'C'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Schema entry: magic(4) | ver(1) | kind(1) | schemaVer(u64 be) | vlen(u32 be) | payload(vlen)
func EncodeSchema(schemaVer uint64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 1 + 8 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindSchema)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], schemaVer)
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// DecodeSchema returns the schema version and the payload subslice.
// The payload is zero-copy into b. Trailing bytes are corruption.
func DecodeSchema(b []byte) (schemaVer uint64, payload []byte, err error) {
	const hdr = 4 + 1 + 1 + 8 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version || b[5] != kindSchema {
		return 0, nil, ErrCorrupt
	}

	off := 6

	schemaVer = binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // overflow-safe exact-length check
		return 0, nil, ErrCorrupt
	}

	return schemaVer, b[off : off+vlen], nil
}
