// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, health ping
//	├── seed.go          # Sample catalog for empty databases
//	├── authors/         # Author listing, lookup, creation, soft delete and purge
//	├── books/           # Books scoped to their author
//	└── audit/           # Audit event persistence and retention
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type built on the shared *gorm.DB:
//
//	db, err := database.NewDatabase("./library.db")
//
//	authorRepo := authors.NewRepository(db.DB)
//	bookRepo := books.NewRepository(db.DB)
//
//	page, total, err := authorRepo.List(ctx, authors.ListParams{Limit: 5})
//	book, err := bookRepo.GetForAuthor(ctx, authorID, bookID)
//
// Lookups that find nothing return gorm.ErrRecordNotFound, which the HTTP
// layer maps to 404.
//
// # Interface Implementations
//
//   - authors.Repository: implements http.AuthorStore, http.AuthorChecker
//     and tasks.DeletedAuthorPurger
//   - books.Repository: implements http.BookStore
//   - Database: implements http.Pinger
//
// The compile-time checks live in package interfaces.
package database
