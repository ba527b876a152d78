// Package authors provides database operations for the author catalog.
//
// # Interface Implementation
//
//	var _ http.AuthorStore = (*Repository)(nil)
//	var _ tasks.DeletedAuthorPurger = (*Repository)(nil)
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	page, total, err := repo.List(ctx, authors.ListParams{Genre: "fantasy", Limit: 5})
package authors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/mapping"
)

// ListParams selects one page of authors.
type ListParams struct {
	Genre       string // exact match, case-insensitive
	SearchQuery string // substring of genre, first or last name, case-insensitive
	Sort        []mapping.SortClause
	Offset      int
	Limit       int
}

// Repository handles author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the requested page of authors matching the filters and the
// total number of matching authors.
func (r *Repository) List(ctx context.Context, p ListParams) ([]entities.Author, int64, error) {
	var total int64
	if err := r.filtered(ctx, p).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count authors: %w", err)
	}

	ordered, err := r.ordered(r.filtered(ctx, p), p.Sort)
	if err != nil {
		return nil, 0, err
	}

	var authors []entities.Author
	if p.Limit > 0 {
		ordered = ordered.Limit(p.Limit)
	}
	if p.Offset > 0 {
		ordered = ordered.Offset(p.Offset)
	}
	if err := ordered.Find(&authors).Error; err != nil {
		return nil, 0, fmt.Errorf("list authors: %w", err)
	}
	return authors, total, nil
}

func (r *Repository) filtered(ctx context.Context, p ListParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Author{})

	if genre := strings.ToLower(strings.TrimSpace(p.Genre)); genre != "" {
		query = query.Where("LOWER(genre) = ?", genre)
	}

	if search := strings.ToLower(strings.TrimSpace(p.SearchQuery)); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(
			"LOWER(genre) LIKE ? ESCAPE '\\' OR LOWER(first_name) LIKE ? ESCAPE '\\' OR LOWER(last_name) LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern,
		)
	}
	return query
}

// ordered applies sort clauses by column, then id so pages are stable.
func (r *Repository) ordered(query *gorm.DB, sort []mapping.SortClause) (*gorm.DB, error) {
	columns := make([]clause.OrderByColumn, 0, len(sort)+1)
	for _, s := range sort {
		column := r.db.NamingStrategy.ColumnName("", s.Field)
		if !sortableColumns[column] {
			return nil, fmt.Errorf("%w: no column for %q", mapping.ErrInvalidSortField, s.Field)
		}
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: s.Descending})
	}
	columns = append(columns, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	return query.Order(clause.OrderBy{Columns: columns}), nil
}

var sortableColumns = map[string]bool{
	"id":            true,
	"first_name":    true,
	"last_name":     true,
	"genre":         true,
	"date_of_birth": true,
	"date_of_death": true,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GetByID retrieves an author. Returns gorm.ErrRecordNotFound if absent.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// GetByIDs retrieves every author whose id is in ids. Missing ids are skipped.
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.Author, error) {
	if len(ids) == 0 {
		return []entities.Author{}, nil
	}
	var authors []entities.Author
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("first_name ASC, last_name ASC").
		Find(&authors).Error
	return authors, err
}

// Exists reports whether a non-deleted author with id exists.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts an author together with any books attached to it.
func (r *Repository) Create(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// CreateMany inserts authors in a single transaction; either all are stored or none.
func (r *Repository) CreateMany(ctx context.Context, authors []entities.Author) error {
	if len(authors) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&authors).Error
	})
}

// Delete soft-deletes an author and its books. Returns gorm.ErrRecordNotFound
// if the author does not exist.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&entities.Author{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("author_id = ?", id).Delete(&entities.Book{}).Error
	})
}

// PurgeDeleted permanently removes authors soft-deleted before cutoff along
// with all of their books. Returns the number of authors removed.
func (r *Repository) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Unscoped().Model(&entities.Author{}).
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Unscoped().Where("author_id IN ?", ids).Delete(&entities.Book{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Where("id IN ?", ids).Delete(&entities.Author{})
		if result.Error != nil {
			return result.Error
		}
		purged = result.RowsAffected
		return nil
	})
	return purged, err
}
