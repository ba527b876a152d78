package books

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, entities.Author) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "books.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Author{}, &entities.Book{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	author := entities.Author{
		FirstName:   "Stephen",
		LastName:    "King",
		DateOfBirth: time.Date(1947, time.September, 21, 0, 0, 0, 0, time.UTC),
		Genre:       "Horror",
		Books: []entities.Book{
			{Title: "The Shining", Description: "An isolated hotel."},
			{Title: "Carrie"},
		},
	}
	require.NoError(t, db.Create(&author).Error)
	return db, author
}

func TestRepository_ListForAuthor(t *testing.T) {
	db, author := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	books, err := repo.ListForAuthor(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Carrie", books[0].Title)
	assert.Equal(t, "The Shining", books[1].Title)

	books, err = repo.ListForAuthor(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRepository_GetForAuthor(t *testing.T) {
	db, author := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	bookID := author.Books[0].ID

	book, err := repo.GetForAuthor(ctx, author.ID, bookID)
	require.NoError(t, err)
	assert.Equal(t, "The Shining", book.Title)

	_, err = repo.GetForAuthor(ctx, uuid.New(), bookID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound), "book under another author is missing")

	_, err = repo.GetForAuthor(ctx, author.ID, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepository_CreateForAuthor(t *testing.T) {
	db, author := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	book := &entities.Book{Title: "Misery", Description: "A nurse and a novelist."}
	require.NoError(t, repo.CreateForAuthor(ctx, author.ID, book))
	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.Equal(t, author.ID, book.AuthorID)

	got, err := repo.GetForAuthor(ctx, author.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "A nurse and a novelist.", got.Description)
}

func TestRepository_Update(t *testing.T) {
	db, author := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	book, err := repo.GetForAuthor(ctx, author.ID, author.Books[0].ID)
	require.NoError(t, err)

	book.Title = "The Shining (Revised)"
	book.Description = ""
	require.NoError(t, repo.Update(ctx, book))

	got, err := repo.GetForAuthor(ctx, author.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Shining (Revised)", got.Title)
	assert.Empty(t, got.Description, "empty description is written")
}

func TestRepository_Delete(t *testing.T) {
	db, author := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	book, err := repo.GetForAuthor(ctx, author.ID, author.Books[1].ID)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, book))

	_, err = repo.GetForAuthor(ctx, author.ID, book.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	books, err := repo.ListForAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}
