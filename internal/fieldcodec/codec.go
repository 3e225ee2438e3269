package fieldcodec

import (
	"bankfmt/datev-convert/internal/tokenizer"
)

// Field is one decoded field value together with the quoting observed
// on the wire.
type Field struct {
	Value     string
	WasQuoted bool
}

// Record is an ordered mapping of field position to value. Records are
// never mutated in place; transformations return new Records.
type Record struct {
	fields []Field
}

// NewRecord builds a record directly from fields, in position order.
func NewRecord(fields []Field) Record {
	copied := make([]Field, len(fields))
	copy(copied, fields)
	return Record{fields: copied}
}

// BuildRecord constructs a record for a registry from label→value
// pairs. Fields without a value are left empty; quoting follows the
// field definition.
func BuildRecord(reg Registry, values map[string]string) Record {
	fields := make([]Field, reg.Len())
	for i, def := range reg.Fields {
		fields[i] = Field{Value: values[def.Label], WasQuoted: def.Quoted}
	}
	return Record{fields: fields}
}

// Len returns the number of field positions in the record.
func (r Record) Len() int {
	return len(r.fields)
}

// Field returns the field at a position. Positions outside the record
// read as empty unquoted fields.
func (r Record) Field(position int) Field {
	if position < 0 || position >= len(r.fields) {
		return Field{}
	}
	return r.fields[position]
}

// Value returns the field value at a position.
func (r Record) Value(position int) string {
	return r.Field(position).Value
}

// ValueOf returns the value of the field with the given label in the
// registry, or "" when the format does not carry that field.
func (r Record) ValueOf(reg Registry, label string) string {
	return r.Value(reg.PositionOf(label))
}

// PopulatedCount returns the number of non-empty field values.
func (r Record) PopulatedCount() int {
	count := 0
	for _, f := range r.fields {
		if f.Value != "" {
			count++
		}
	}
	return count
}

// WithValue returns a new record with the field at position replaced.
// The record grows as needed; new intermediate fields are empty.
func (r Record) WithValue(position int, value string, quoted bool) Record {
	size := len(r.fields)
	if position >= size {
		size = position + 1
	}
	fields := make([]Field, size)
	copy(fields, r.fields)
	fields[position] = Field{Value: value, WasQuoted: quoted}
	return Record{fields: fields}
}

// Decode zips tokens with the registry's field definitions by position.
// When fewer tokens arrive than the registry defines, the missing
// positions are padded with empty unquoted fields; short records are
// the defined behavior, not an error. Extra tokens beyond the registry
// are kept so that Encode can reproduce the input exactly.
func Decode(tokens []tokenizer.Token, reg Registry) Record {
	size := reg.Len()
	if len(tokens) > size {
		size = len(tokens)
	}
	fields := make([]Field, size)
	for i, t := range tokens {
		fields[i] = Field{Value: t.Value, WasQuoted: t.WasQuoted}
	}
	return Record{fields: fields}
}

// Encode emits the record as tokens. A field is quoted when it was
// quoted on decode or the field definition marks it mandatory-quoted.
// For any token sequence produced by a conformant writer,
// Encode(Decode(tokens)) == tokens, including quoting.
func Encode(r Record, reg Registry) []tokenizer.Token {
	tokens := make([]tokenizer.Token, len(r.fields))
	for i, f := range r.fields {
		quoted := f.WasQuoted
		if def, ok := reg.Definition(i); ok && def.Quoted {
			quoted = true
		}
		tokens[i] = tokenizer.Token{Value: f.Value, WasQuoted: quoted}
	}
	return tokens
}
