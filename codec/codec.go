// Package codec (de)serializes values - typically schema.Document - to
// []byte for storage and distribution. Pick one format per registry; the
// bytes a Codec produces are opaque to everything else.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
