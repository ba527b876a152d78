package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// sampleAuthors returns the catalog loaded by Seed. IDs are fixed so links in
// documentation keep working across reseeds.
func sampleAuthors() []entities.Author {
	return []entities.Author{
		{
			ID: uuid.MustParse("25320c5e-f58a-4b1f-b63a-8ee07a840bdf"), FirstName: "Stephen", LastName: "King",
			DateOfBirth: day(1947, time.September, 21), Genre: "Horror",
			Books: []entities.Book{
				{ID: uuid.MustParse("c7ba6add-09c4-45f8-8dd0-eaca221e5d93"), Title: "The Shining", Description: "The Shining is a horror novel by American author Stephen King."},
				{ID: uuid.MustParse("a3749477-f823-4124-aa4a-fc9ad5e79cd6"), Title: "Misery", Description: "Misery is a psychological horror thriller novel by Stephen King."},
				{ID: uuid.MustParse("70a1f9b9-0a37-4c1a-99b1-c7709fc64167"), Title: "It", Description: "It is a horror novel by American author Stephen King."},
				{ID: uuid.MustParse("60188a2b-2784-4fc4-8df8-8919ff838b0b"), Title: "The Stand", Description: "The Stand is a post-apocalyptic horror/fantasy novel by Stephen King."},
			},
		},
		{
			ID: uuid.MustParse("76053df4-6687-4353-8937-b45556748abe"), FirstName: "George", LastName: "RR Martin",
			DateOfBirth: day(1948, time.September, 20), Genre: "Fantasy",
			Books: []entities.Book{
				{ID: uuid.MustParse("447eb762-95e9-4c31-95e1-b20053fbe215"), Title: "A Game of Thrones", Description: "The first novel in A Song of Ice and Fire."},
				{ID: uuid.MustParse("bc4c35c3-3857-4250-9449-155fcf5109ec"), Title: "The Winds of Winter", Description: "Forthcoming sixth novel in A Song of Ice and Fire."},
				{ID: uuid.MustParse("09af5a52-9421-44e8-a2bb-a6b9ccbc8239"), Title: "A Dance with Dragons", Description: "The fifth of seven planned novels in A Song of Ice and Fire."},
			},
		},
		{
			ID: uuid.MustParse("412c3012-d891-4f5e-9613-ff7aa63e6bb3"), FirstName: "Neil", LastName: "Gaiman",
			DateOfBirth: day(1960, time.November, 10), Genre: "Fantasy",
			Books: []entities.Book{
				{ID: uuid.MustParse("9edf91ee-ab77-4521-a402-5f188bc0c577"), Title: "American Gods", Description: "A Hugo and Nebula Award-winning novel by Neil Gaiman."},
			},
		},
		{
			ID: uuid.MustParse("578359b7-1967-41d6-8b87-64ab7605587e"), FirstName: "Tom", LastName: "Lanoye",
			DateOfBirth: day(1958, time.August, 27), Genre: "Various",
			Books: []entities.Book{
				{ID: uuid.MustParse("01457142-358f-495f-aafa-fb23de3d67e9"), Title: "Speechless", Description: "Good, in the moving tale of his mother's final years."},
			},
		},
		{
			ID: uuid.MustParse("f74d6899-9ed2-4137-9876-66b070553f8f"), FirstName: "Douglas", LastName: "Adams",
			DateOfBirth: day(1952, time.March, 11), DateOfDeath: ptrTime(day(2001, time.May, 11)), Genre: "Science fiction",
			Books: []entities.Book{
				{ID: uuid.MustParse("e57b605f-8b3c-4089-b672-6ce9e6d6c23f"), Title: "The Hitchhiker's Guide to the Galaxy", Description: "A comedy science fiction series by Douglas Adams."},
			},
		},
		{
			ID: uuid.MustParse("a1da1d8e-1988-4634-b538-a01709477b77"), FirstName: "Jens", LastName: "Lapidus",
			DateOfBirth: day(1974, time.May, 24), Genre: "Thriller",
			Books: []entities.Book{
				{ID: uuid.MustParse("1325360c-8253-473a-a20f-55c269c20407"), Title: "Easy Money", Description: "Easy Money or Snabba Cash is a novel from 2006 by Jens Lapidus."},
			},
		},
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

// Seed loads the sample catalog into an empty database. It returns the number
// of authors created, zero when authors already exist.
func (d *Database) Seed() (int, error) {
	var count int64
	if err := d.DB.Unscoped().Model(&entities.Author{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	if count > 0 {
		zap.L().Info("seed skipped, catalog not empty", zap.Int64("authors", count))
		return 0, nil
	}

	authors := sampleAuthors()
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&authors).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed authors: %w", err)
	}

	zap.L().Info("seeded sample catalog", zap.Int("authors", len(authors)))
	return len(authors), nil
}
