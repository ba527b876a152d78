package dto

import (
	"github.com/mrlokans/library/internal/mapping"
	"github.com/mrlokans/library/internal/shaping"
)

// AuthorMappingPair identifies the author sort mappings.
var AuthorMappingPair = mapping.TypePair{Source: AuthorDtoType, Destination: AuthorType}

// NewCatalog declares the shapeable fields of every output type.
func NewCatalog() (*shaping.Catalog, error) {
	catalog := shaping.NewCatalog()
	if err := catalog.Register(AuthorDtoType, "id", AuthorFields...); err != nil {
		return nil, err
	}
	if err := catalog.Register(BookDtoType, "id", BookFields...); err != nil {
		return nil, err
	}
	return catalog, nil
}

// NewMappingRegistry registers the sortable fields of every output type.
// Backing fields are entity field names.
func NewMappingRegistry() (*mapping.Registry, error) {
	registry := mapping.NewRegistry()
	err := registry.Register(AuthorMappingPair,
		mapping.FieldMapping{PublicName: "Id", BackingFields: []string{"ID"}},
		mapping.FieldMapping{PublicName: "Genre", BackingFields: []string{"Genre"}},
		mapping.FieldMapping{PublicName: "Age", BackingFields: []string{"DateOfBirth"}, Reversed: true},
		mapping.FieldMapping{PublicName: "Name", BackingFields: []string{"FirstName", "LastName"}},
	)
	if err != nil {
		return nil, err
	}
	return registry, nil
}
