package http

import (
	"time"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/dto"
	"github.com/mrlokans/library/internal/mapping"
	"github.com/mrlokans/library/internal/paging"
	"github.com/mrlokans/library/internal/shaping"
	"go.uber.org/zap"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	AuthorStore AuthorStore
	BookStore   BookStore
	Database    *database.Database // health checks only

	// Resource projection. Nil values are replaced with the dto defaults.
	Catalog   *shaping.Catalog
	Mappings  *mapping.Registry
	Validator *dto.Validator

	// Paging and hypermedia
	Limits              paging.Limits
	HypermediaMediaType string
	BaseURL             string // Absolute link base; derived per request when empty

	// Audit trail (optional)
	AuditLogger AuditLogger
	AuditReader AuditReader

	// Task queue (optional)
	TaskQueue   TaskQueue
	Maintenance MaintenanceRunner

	// Application info
	Version string
	Logger  *zap.Logger

	// Now returns the clock used to derive author ages. Defaults to time.Now.
	Now func() time.Time
}
