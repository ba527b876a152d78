package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/shaping"
)

// Type names used as catalog and mapping keys.
const (
	AuthorDtoType = "AuthorDto"
	AuthorType    = "Author"
	BookDtoType   = "BookDto"
	BookType      = "Book"
)

// AuthorDto is the client-facing view of an author.
type AuthorDto struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Age   int       `json:"age"`
	Genre string    `json:"genre"`
}

// AuthorFields lists the AuthorDto fields in declaration order.
var AuthorFields = []string{"id", "name", "age", "genre"}

// NewAuthorDto converts an author entity, deriving age as of now.
func NewAuthorDto(a entities.Author, now time.Time) AuthorDto {
	return AuthorDto{
		ID:    a.ID,
		Name:  strings.TrimSpace(a.FirstName + " " + a.LastName),
		Age:   GetCurrentAge(a.DateOfBirth, a.DateOfDeath, now),
		Genre: a.Genre,
	}
}

// NewAuthorDtos converts a slice of author entities.
func NewAuthorDtos(authors []entities.Author, now time.Time) []AuthorDto {
	out := make([]AuthorDto, len(authors))
	for i, a := range authors {
		out[i] = NewAuthorDto(a, now)
	}
	return out
}

// Record returns the author as an ordered record keyed by its JSON names.
func (a AuthorDto) Record() shaping.Record {
	r := shaping.NewRecord("id")
	r.Set("id", a.ID)
	r.Set("name", a.Name)
	r.Set("age", a.Age)
	r.Set("genre", a.Genre)
	return r
}

// AuthorRecords converts authors to records.
func AuthorRecords(authors []AuthorDto) []shaping.Record {
	records := make([]shaping.Record, len(authors))
	for i, a := range authors {
		records[i] = a.Record()
	}
	return records
}

// GetCurrentAge returns the number of whole years between dateOfBirth and
// dateOfDeath, or now when the author is alive.
func GetCurrentAge(dateOfBirth time.Time, dateOfDeath *time.Time, now time.Time) int {
	until := now.UTC()
	if dateOfDeath != nil {
		until = dateOfDeath.UTC()
	}
	born := dateOfBirth.UTC()

	age := until.Year() - born.Year()
	if until.Before(born.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

// AuthorForCreation is the request body for creating an author, alone, in a
// collection or with books.
type AuthorForCreation struct {
	FirstName   string            `json:"firstName" validate:"required,max=50"`
	LastName    string            `json:"lastName" validate:"required,max=50"`
	DateOfBirth time.Time         `json:"dateOfBirth" validate:"required"`
	DateOfDeath *time.Time        `json:"dateOfDeath,omitempty"`
	Genre       string            `json:"genre" validate:"required,max=50"`
	Books       []BookForCreation `json:"books,omitempty" validate:"dive"`
}

// Entity converts the request into a new author entity with its books.
func (a AuthorForCreation) Entity() entities.Author {
	author := entities.Author{
		FirstName:   strings.TrimSpace(a.FirstName),
		LastName:    strings.TrimSpace(a.LastName),
		DateOfBirth: a.DateOfBirth,
		DateOfDeath: a.DateOfDeath,
		Genre:       strings.TrimSpace(a.Genre),
	}
	for _, b := range a.Books {
		author.Books = append(author.Books, b.Entity())
	}
	return author
}
