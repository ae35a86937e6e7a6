package bitpack

import (
	"fmt"
	"strings"
)

// SpecError reports a malformed field list or a field type missing required
// capabilities. Raised at Codec construction only; fatal, not retried.
type SpecError struct {
	Field  string // offending field name; may be empty for list-level faults
	Reason string
}

func (e *SpecError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bitpack: invalid spec: %s", e.Reason)
	}
	return fmt.Sprintf("bitpack: invalid spec: field %q: %s", e.Field, e.Reason)
}

// FieldFailure is one entry of a ValidationError.
type FieldFailure struct {
	Field string
	Want  string // declared field type
	Value any    // the supplied value (its runtime type is the "got" side)
	Err   error  // coercion error, if coercion was attempted
}

func (f FieldFailure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("field %q: cannot coerce %T (%v) to %s: %v", f.Field, f.Value, f.Value, f.Want, f.Err)
	}
	return fmt.Sprintf("field %q: got %T (%v), want %s", f.Field, f.Value, f.Value, f.Want)
}

// ValidationError carries every per-field failure found in a Struct, never
// just the first. Recoverable: fix the input and retry.
type ValidationError struct {
	Failures []FieldFailure
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.String()
	}
	return "bitpack: validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	var errs []error
	for _, f := range e.Failures {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// EncodingError signals a caller or type-implementation bug: a value
// overflowed its declared width, or a bytes strategy returned a chunk of the
// wrong shape. Not retried.
type EncodingError struct {
	Field  string
	Reason string
	Cause  error
}

func (e *EncodingError) Error() string {
	msg := fmt.Sprintf("bitpack: encode field %q: %s", e.Field, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *EncodingError) Unwrap() error { return e.Cause }

// DecodingError signals malformed or truncated input. Expected under
// untrusted input; match with errors.As.
type DecodingError struct {
	Field  string // empty for buffer-level faults (short/trailing input)
	Reason string
	Cause  error
}

func (e *DecodingError) Error() string {
	if e.Field == "" {
		return "bitpack: decode: " + e.Reason
	}
	msg := fmt.Sprintf("bitpack: decode field %q: %s", e.Field, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodingError) Unwrap() error { return e.Cause }
