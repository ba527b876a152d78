// Package mapping translates client-facing sort keys into the storage fields
// that back them.
//
// A Registry holds one set of Mappings per (source, destination) type pair.
// It is populated once at startup and only read afterwards, so a single
// instance can be shared by every request without locking.
//
// # Usage
//
//	registry := mapping.NewRegistry()
//	err := registry.Register(mapping.TypePair{Source: "AuthorDto", Destination: "Author"},
//		mapping.FieldMapping{PublicName: "Name", BackingFields: []string{"FirstName", "LastName"}},
//		mapping.FieldMapping{PublicName: "Age", BackingFields: []string{"DateOfBirth"}, Reversed: true},
//	)
//
//	authorMappings, err := registry.Lookup(pair)
//	if !authorMappings.Validate(orderBy) {
//		// reject the request
//	}
//	clauses, err := authorMappings.SortClauses(orderBy)
package mapping

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mrlokans/library/internal/fieldlist"
)

var (
	// ErrUnknownTypeMapping is returned when no mappings were registered for a type pair.
	ErrUnknownTypeMapping = errors.New("unknown type mapping")

	// ErrUnknownField is returned by Resolve for a public name that has no mapping.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidSortField is returned when an orderBy clause names an unmapped field.
	ErrInvalidSortField = errors.New("invalid sort field")
)

// TypePair identifies the client-facing type and the storage type a set of
// mappings translates between.
type TypePair struct {
	Source      string
	Destination string
}

func (p TypePair) String() string {
	return fmt.Sprintf("<%s,%s>", p.Source, p.Destination)
}

// FieldMapping maps one public field onto one or more backing fields.
// Reversed inverts the sort direction, for public fields that grow when the
// backing field shrinks (age against date of birth).
type FieldMapping struct {
	PublicName    string
	BackingFields []string
	Reversed      bool
}

// SortClause is a single backing-field ordering produced from an orderBy string.
type SortClause struct {
	Field      string
	Descending bool
}

// Mappings is the immutable set of field mappings for one type pair.
type Mappings struct {
	pair   TypePair
	byName map[string]FieldMapping
}

// Pair returns the type pair these mappings belong to.
func (m *Mappings) Pair() TypePair {
	return m.pair
}

// Validate reports whether every clause of fields names a mapped public field.
// Matching is case-insensitive and anything after the first space of a clause
// (a direction) is ignored. A blank list is valid.
func (m *Mappings) Validate(fields string) bool {
	for _, name := range fieldlist.Names(fields) {
		if _, ok := m.byName[strings.ToLower(name)]; !ok {
			return false
		}
	}
	return true
}

// Resolve returns the mapping for a public field name.
func (m *Mappings) Resolve(publicName string) (FieldMapping, error) {
	fm, ok := m.byName[strings.ToLower(strings.TrimSpace(publicName))]
	if !ok {
		return FieldMapping{}, fmt.Errorf("%w: %q for %s", ErrUnknownField, publicName, m.pair)
	}
	return fm, nil
}

// PublicNames returns the registered public names in sorted order.
func (m *Mappings) PublicNames() []string {
	names := make([]string, 0, len(m.byName))
	for _, fm := range m.byName {
		names = append(names, fm.PublicName)
	}
	sort.Strings(names)
	return names
}

// SortClauses expands an orderBy string into backing-field clauses.
// Clauses keep the order in which they were requested and each backing field
// of a multi-field mapping yields its own clause, in registration order.
// A clause ending in " desc" sorts descending; Reversed mappings flip it.
func (m *Mappings) SortClauses(orderBy string) ([]SortClause, error) {
	if fieldlist.IsBlank(orderBy) {
		return nil, nil
	}

	var clauses []SortClause
	for _, raw := range strings.Split(orderBy, ",") {
		trimmed := strings.TrimSpace(raw)
		name := fieldlist.Name(trimmed)

		fm, ok := m.byName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortField, name)
		}

		descending := strings.HasSuffix(strings.ToLower(trimmed), " desc")
		if fm.Reversed {
			descending = !descending
		}

		for _, field := range fm.BackingFields {
			clauses = append(clauses, SortClause{Field: field, Descending: descending})
		}
	}
	return clauses, nil
}

// Registry holds the mappings of every registered type pair.
type Registry struct {
	pairs map[TypePair]*Mappings
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{pairs: make(map[TypePair]*Mappings)}
}

// Register adds the mappings for a type pair. It must be called before the
// registry is shared; a pair may only be registered once.
func (r *Registry) Register(pair TypePair, fields ...FieldMapping) error {
	if _, exists := r.pairs[pair]; exists {
		return fmt.Errorf("mappings for %s already registered", pair)
	}

	byName := make(map[string]FieldMapping, len(fields))
	for _, fm := range fields {
		key := strings.ToLower(strings.TrimSpace(fm.PublicName))
		if key == "" {
			return fmt.Errorf("mapping for %s has an empty public name", pair)
		}
		if len(fm.BackingFields) == 0 {
			return fmt.Errorf("mapping %q for %s has no backing fields", fm.PublicName, pair)
		}
		if _, dup := byName[key]; dup {
			return fmt.Errorf("mapping %q for %s registered twice", fm.PublicName, pair)
		}

		fm.BackingFields = append([]string(nil), fm.BackingFields...)
		byName[key] = fm
	}

	r.pairs[pair] = &Mappings{pair: pair, byName: byName}
	return nil
}

// Lookup returns the mappings registered for pair.
func (r *Registry) Lookup(pair TypePair) (*Mappings, error) {
	m, ok := r.pairs[pair]
	if !ok {
		return nil, fmt.Errorf("%w: cannot find exact property mapping instance for %s", ErrUnknownTypeMapping, pair)
	}
	return m, nil
}
