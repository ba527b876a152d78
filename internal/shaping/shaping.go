// Package shaping projects output records onto the subset of fields a client
// asked for with the fields query parameter.
//
// A Catalog declares, per output type, every field a client may request. It is
// built at startup and read-only afterwards.
package shaping

import (
	"fmt"
	"strings"

	"github.com/mrlokans/library/internal/fieldlist"
)

// Catalog is the registry of declared output fields per type.
type Catalog struct {
	types map[string]typeFields
}

type typeFields struct {
	identity string
	ordered  []string
	byName   map[string]string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: make(map[string]typeFields)}
}

// Register declares the output fields of typeName. identity must be one of fields.
func (c *Catalog) Register(typeName, identity string, fields ...string) error {
	if _, exists := c.types[typeName]; exists {
		return fmt.Errorf("fields for %s already registered", typeName)
	}

	tf := typeFields{
		identity: identity,
		ordered:  append([]string(nil), fields...),
		byName:   make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		tf.byName[strings.ToLower(f)] = f
	}
	if _, ok := tf.byName[strings.ToLower(identity)]; !ok {
		return fmt.Errorf("identity field %q is not declared for %s", identity, typeName)
	}

	c.types[typeName] = tf
	return nil
}

// HasProperties reports whether every clause of fields names a declared field
// of typeName. A blank list is valid; an unregistered type is not.
func (c *Catalog) HasProperties(typeName, fields string) bool {
	tf, ok := c.types[typeName]
	if !ok {
		return false
	}

	for _, name := range fieldlist.Names(fields) {
		if _, ok := tf.byName[strings.ToLower(name)]; !ok {
			return false
		}
	}
	return true
}

// Fields returns the declared fields of typeName in declaration order.
func (c *Catalog) Fields(typeName string) []string {
	return append([]string(nil), c.types[typeName].ordered...)
}

// Identity returns the identity field of typeName.
func (c *Catalog) Identity(typeName string) string {
	return c.types[typeName].identity
}

// Shape returns a new record holding exactly the requested fields in the
// order they were requested, keyed by the record's own field names. A blank
// list keeps every field in its natural order. The identity value stays
// available through ID either way.
func Shape(record Record, fields string) Record {
	if fieldlist.IsBlank(fields) {
		return record.Clone()
	}

	shaped := Record{identity: record.identity, id: record.id}
	for _, name := range fieldlist.Names(fields) {
		if name == "" {
			continue
		}
		i := record.index(name)
		if i < 0 || shaped.index(name) >= 0 {
			continue
		}
		shaped.fields = append(shaped.fields, record.fields[i])
	}
	return shaped
}

// ShapeAll shapes every record with the same field list.
func ShapeAll(records []Record, fields string) []Record {
	shaped := make([]Record, len(records))
	for i, r := range records {
		shaped[i] = Shape(r, fields)
	}
	return shaped
}
