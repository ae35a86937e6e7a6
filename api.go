package bitpack

// Options tune a Codec. Only Fields is required.
type Options struct {
	// Required. Ordered field list; order defines the bit layout.
	Fields []Field

	Logger Logger // if nil, NopLogger is used

	// KeepRaw makes Decode store a Raw value for a field whose decode
	// strategy's type conversion fails, instead of failing the whole
	// decode. Encode writes Raw values back unconverted.
	KeepRaw bool
}

// New compiles the ordered field list into a Codec: bit widths are queried
// once, cumulative offsets precomputed, and encode/decode strategies
// resolved and cached per field. Returns *SpecError when the field list is
// malformed or a type misses required capabilities.
func New(opts Options) (*Codec, error) {
	if len(opts.Fields) == 0 {
		return nil, &SpecError{Reason: "no fields"}
	}

	c := &Codec{
		fields:  make([]boundField, 0, len(opts.Fields)),
		index:   make(map[string]int, len(opts.Fields)),
		log:     coalesce[Logger](opts.Logger, NopLogger{}),
		keepRaw: opts.KeepRaw,
	}

	offset := 0
	for _, f := range opts.Fields {
		if _, dup := c.index[f.Name]; dup && f.Name != "" {
			return nil, &SpecError{Field: f.Name, Reason: "duplicate field name"}
		}
		b, err := bindField(f, offset)
		if err != nil {
			return nil, err
		}
		c.index[b.name] = len(c.fields)
		c.fields = append(c.fields, b)
		offset += b.bits
	}
	c.totalBits = offset

	return c, nil
}
