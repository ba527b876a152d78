package shaping

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is a single name/value pair of a Record.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered mapping of field name to value. It serializes to a JSON
// object whose keys keep insertion order.
//
// A record remembers the value of its identity field even after shaping drops
// that field from the visible set, so links can still be built for it.
type Record struct {
	fields   []Field
	identity string
	id       any
}

// NewRecord creates an empty record whose identity field is named identity.
func NewRecord(identity string) Record {
	return Record{identity: identity}
}

// Set appends a field, or replaces the value of an existing field with the
// same name (case-insensitive) in place.
func (r *Record) Set(name string, value any) {
	if r.identity != "" && strings.EqualFold(name, r.identity) {
		r.id = value
	}

	for i := range r.fields {
		if strings.EqualFold(r.fields[i].Name, name) {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Get returns the value stored under name (case-insensitive).
func (r Record) Get(name string) (any, bool) {
	if i := r.index(name); i >= 0 {
		return r.fields[i].Value, true
	}
	return nil, false
}

// ID returns the identity value of the record whether or not the identity
// field is still part of the visible fields.
func (r Record) ID() any {
	return r.id
}

// IdentityField returns the name of the identity field.
func (r Record) IdentityField() string {
	return r.identity
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Name
	}
	return keys
}

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Len returns the number of visible fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Clone returns a record that shares no field storage with r.
func (r Record) Clone() Record {
	return Record{
		fields:   r.Fields(),
		identity: r.identity,
		id:       r.id,
	}
}

func (r Record) index(name string) int {
	for i, f := range r.fields {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}
	return -1
}

// MarshalJSON writes the fields as a JSON object in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
