package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./library.db"
)

// Collection defaults
const (
	DefaultPageSize = 5
	MaxPageSize     = 20

	// HypermediaMediaType is the vendor media type clients send in Accept to get links
	HypermediaMediaType = "application/vnd.excentric.hateoas+json"
)
