// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help code agents understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - AuthorStore: Author catalog, paging and bulk creation (internal/http/stores.go)
//   - AuthorChecker: Author existence for nested book routes (internal/http/stores.go)
//   - BookStore: Books of an author (internal/http/stores.go)
//   - Pinger: Database health (internal/http/health.go)
//
// ## Audit Interfaces
//
//   - AuditLogger: Fire-and-forget change records (internal/http/stores.go)
//   - AuditReader: Paged audit log (internal/http/stores.go)
//   - PurgeRecorder: Synchronous purge records (internal/tasks/purge_authors.go)
//   - AuditEventCleaner: Retention cleanup (internal/tasks/cleanup_audit.go)
//
// ## Background Work Interfaces
//
//   - DeletedAuthorPurger: Hard delete of soft-deleted authors (internal/tasks/purge_authors.go)
//   - TaskQueue / TaskEnqueuer: backlite task submission (internal/http/stores.go, internal/scheduler/purge.go)
//   - MaintenanceRunner: Immediate maintenance run (internal/http/stores.go)
//
// # Adding a New Resource
//
// To expose a new resource (e.g., publishers) through the API:
//
//  1. Add the entity to internal/entities/ and migrate it in database.NewDatabase
//
//  2. Create sub-package internal/database/publishers/:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Add the output type to internal/dto/ with a Record method, and register
//     its fields in NewCatalog and its sort mappings in NewMappingRegistry:
//
//     mapping.FieldMapping{PublicName: "Name", BackingFields: []string{"Name"}}
//
//  4. Declare the store interface and controller in internal/http/, name its
//     routes in hypermedia.go and register them in router.go
//
//  5. Add compile-time check:
//
//     var _ http.PublisherStore = (*publishers.Repository)(nil)
//
// # Adding a New Background Task
//
//  1. Define the task and its processor in internal/tasks/:
//
//     type ReindexTask struct{}
//
//     func (t ReindexTask) Config() backlite.QueueConfig
//
//     func NewReindexQueue(...) backlite.Queue
//
//  2. Register the queue in entrypoint.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
