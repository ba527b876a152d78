package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/entities"
)

// Store interfaces used by the HTTP controllers. Each controller receives
// only the operations it needs; the repositories satisfy them.

// AuthorStore provides the author catalog.
type AuthorStore interface {
	List(ctx context.Context, p authors.ListParams) ([]entities.Author, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Author, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.Author, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, author *entities.Author) error
	CreateMany(ctx context.Context, authors []entities.Author) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthorChecker reports whether an author exists.
type AuthorChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// BookStore provides the books of an author.
type BookStore interface {
	ListForAuthor(ctx context.Context, authorID uuid.UUID) ([]entities.Book, error)
	GetForAuthor(ctx context.Context, authorID, bookID uuid.UUID) (*entities.Book, error)
	CreateForAuthor(ctx context.Context, authorID uuid.UUID, book *entities.Book) error
	Update(ctx context.Context, book *entities.Book) error
	Delete(ctx context.Context, book *entities.Book) error
}

// AuditLogger records changes made through the API. Writes are fire-and-forget.
type AuditLogger interface {
	LogCreate(entityType, entityID, description string, payload any)
	LogUpdate(entityType, entityID, action, description string)
	LogDelete(entityType, entityID, entityName string)
}

// AuditReader pages through recorded events.
type AuditReader interface {
	GetEvents(entityType string, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// MaintenanceRunner triggers the scheduled maintenance tasks immediately.
type MaintenanceRunner interface {
	RunNow() ([]string, error)
}

// nopAudit discards audit records when no audit service is configured.
type nopAudit struct{}

func (nopAudit) LogCreate(string, string, string, any)    {}
func (nopAudit) LogUpdate(string, string, string, string) {}
func (nopAudit) LogDelete(string, string, string)         {}
