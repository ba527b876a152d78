package dto

import (
	"github.com/google/uuid"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/shaping"
)

// BookDto is the client-facing view of a book.
type BookDto struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    uuid.UUID `json:"authorId"`
}

// BookFields lists the BookDto fields in declaration order.
var BookFields = []string{"id", "title", "description", "authorId"}

func NewBookDto(b entities.Book) BookDto {
	return BookDto{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		AuthorID:    b.AuthorID,
	}
}

func NewBookDtos(books []entities.Book) []BookDto {
	out := make([]BookDto, len(books))
	for i, b := range books {
		out[i] = NewBookDto(b)
	}
	return out
}

// Record returns the book as an ordered record keyed by its JSON names.
func (b BookDto) Record() shaping.Record {
	r := shaping.NewRecord("id")
	r.Set("id", b.ID)
	r.Set("title", b.Title)
	r.Set("description", b.Description)
	r.Set("authorId", b.AuthorID)
	return r
}

// BookForCreation is the request body for adding a book to an author.
type BookForCreation struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500,nefield=Title"`
}

func (b BookForCreation) Entity() entities.Book {
	return entities.Book{Title: b.Title, Description: b.Description}
}

// BookForUpdate is the full replacement body of a book, and the document a
// JSON Patch is applied to.
type BookForUpdate struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500,nefield=Title"`
}

// NewBookForUpdate captures the updatable state of a stored book.
func NewBookForUpdate(b entities.Book) BookForUpdate {
	return BookForUpdate{Title: b.Title, Description: b.Description}
}

// ApplyTo copies the updatable fields onto a stored book.
func (u BookForUpdate) ApplyTo(b *entities.Book) {
	b.Title = u.Title
	b.Description = u.Description
}
