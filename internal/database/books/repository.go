// Package books provides database operations for the books of an author.
//
// Every lookup is scoped to an author, so a book id found under the wrong
// author is treated as missing.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
package books

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

// Repository handles book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForAuthor retrieves all books of an author ordered by title.
func (r *Repository) ListForAuthor(ctx context.Context, authorID uuid.UUID) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("title ASC").Order("id ASC").
		Find(&books).Error
	return books, err
}

// GetForAuthor retrieves one book of an author. Returns gorm.ErrRecordNotFound if absent.
func (r *Repository) GetForAuthor(ctx context.Context, authorID, bookID uuid.UUID) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND id = ?", authorID, bookID).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateForAuthor inserts a book under authorID.
func (r *Repository) CreateForAuthor(ctx context.Context, authorID uuid.UUID, book *entities.Book) error {
	book.AuthorID = authorID
	return r.db.WithContext(ctx).Create(book).Error
}

// Update saves the title and description of a stored book.
func (r *Repository) Update(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Model(book).
		Select("title", "description").
		Updates(map[string]any{"title": book.Title, "description": book.Description}).Error
}

// Delete soft-deletes a book.
func (r *Repository) Delete(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Delete(book).Error
}
