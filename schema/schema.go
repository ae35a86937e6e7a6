// Package schema defines a declarative, serializable description of a
// bitpack field list. A Document is the explicit collaborator the core
// codec treats as a black box: something that produces an ordered
// {name, type} sequence. Documents travel through any codec.Codec
// (JSON/CBOR/Msgpack/...) and compile into ready *bitpack.Codec values.
package schema

import (
	"fmt"

	"github.com/unkn0wn-root/bitpack"
	"github.com/unkn0wn-root/bitpack/types"
)

// Field kinds understood by Compile.
const (
	KindUInt  = "uint"  // Bits
	KindInt   = "int"   // Bits
	KindBool  = "bool"  // 1 bit
	KindEnum  = "enum"  // Bits + Members
	KindConst = "const" // Bits + Value
	KindFixed = "fixed" // Bits + Frac
	KindBytes = "bytes" // Size (whole bytes)
)

// FieldDef describes one field of a schema. Only the parameters named next
// to each kind above are consulted.
type FieldDef struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Bits    int      `json:"bits,omitempty"`
	Frac    int      `json:"frac,omitempty"`
	Size    int      `json:"size,omitempty"`
	Value   uint64   `json:"value,omitempty"`
	Members []uint64 `json:"members,omitempty"`
}

// Document is a named, ordered field list. Field order defines the bit
// layout, exactly as in []bitpack.Field.
type Document struct {
	Name   string     `json:"name"`
	Fields []FieldDef `json:"fields"`
}

// Type resolves the field definition to its types descriptor.
func (d FieldDef) Type() (bitpack.Type, error) {
	switch d.Kind {
	case KindUInt:
		return types.UInt(d.Bits), nil
	case KindInt:
		return types.SInt(d.Bits), nil
	case KindBool:
		return types.Bool, nil
	case KindEnum:
		return types.Enum(d.Bits, d.Members...), nil
	case KindConst:
		return types.Const(d.Bits, d.Value), nil
	case KindFixed:
		return types.FixedPoint(d.Bits, d.Frac), nil
	case KindBytes:
		return types.Bytes(d.Size), nil
	default:
		return nil, fmt.Errorf("schema: field %q: unknown kind %q", d.Name, d.Kind)
	}
}

// FieldList resolves every definition into a bitpack field list.
func (d Document) FieldList() ([]bitpack.Field, error) {
	out := make([]bitpack.Field, 0, len(d.Fields))
	for _, fd := range d.Fields {
		t, err := fd.Type()
		if err != nil {
			return nil, err
		}
		out = append(out, bitpack.Field{Name: fd.Name, Type: t})
	}
	return out, nil
}

// Compile builds a Codec from the document. Construction-time faults
// surface as *bitpack.SpecError.
func (d Document) Compile(opts bitpack.Options) (*bitpack.Codec, error) {
	fields, err := d.FieldList()
	if err != nil {
		return nil, err
	}
	opts.Fields = fields
	return bitpack.New(opts)
}
