package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/dto"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/links"
	"github.com/mrlokans/library/internal/logging"
)

// BooksController serves the books of an author.
type BooksController struct {
	authors   AuthorChecker
	store     BookStore
	audit     AuditLogger
	validator *dto.Validator
	hyper     *Hypermedia
}

func NewBooksController(authors AuthorChecker, store BookStore, audit AuditLogger, validator *dto.Validator, hyper *Hypermedia) *BooksController {
	if audit == nil {
		audit = nopAudit{}
	}
	return &BooksController{
		authors:   authors,
		store:     store,
		audit:     audit,
		validator: validator,
		hyper:     hyper,
	}
}

// requireAuthor parses the author id and checks it exists. It writes the
// error response and returns false otherwise.
func (bc *BooksController) requireAuthor(c *gin.Context) (uuid.UUID, bool) {
	authorID, ok := parseUUIDParam(c, "id")
	if !ok {
		return uuid.Nil, false
	}
	exists, err := bc.authors.Exists(c.Request.Context(), authorID)
	if err != nil {
		respondInternalError(c, err, "author exists")
		return uuid.Nil, false
	}
	if !exists {
		respondNotFound(c, "author")
		return uuid.Nil, false
	}
	return authorID, true
}

// requireBook loads the book addressed by the request.
func (bc *BooksController) requireBook(c *gin.Context) (*entities.Book, bool) {
	authorID, ok := bc.requireAuthor(c)
	if !ok {
		return nil, false
	}
	bookID, ok := parseUUIDParam(c, "bookId")
	if !ok {
		return nil, false
	}

	book, err := bc.store.GetForAuthor(c.Request.Context(), authorID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return nil, false
		}
		respondInternalError(c, err, "get book")
		return nil, false
	}
	return book, true
}

// GetBooksForAuthor handles GET /api/authors/:id/books
func (bc *BooksController) GetBooksForAuthor(c *gin.Context) {
	authorID, ok := bc.requireAuthor(c)
	if !ok {
		return
	}

	books, err := bc.store.ListForAuthor(c.Request.Context(), authorID)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	bookDtos := dto.NewBookDtos(books)

	if bc.hyper.Mode(c) != links.ModeHypermedia {
		c.JSON(http.StatusOK, bookDtos)
		return
	}

	b := bc.hyper.Builder(c)
	value := make([]links.LinkedRecord, 0, len(bookDtos))
	for _, book := range bookDtos {
		bookLinksList, err := bookLinks(b, authorID.String(), book.ID.String())
		if err != nil {
			respondInternalError(c, err, "book links")
			return
		}
		value = append(value, links.LinkedRecord{Record: book.Record(), Links: bookLinksList})
	}

	self, err := b.Link(RouteGetBooksForAuthor, "self", map[string]string{"id": authorID.String()})
	if err != nil {
		respondInternalError(c, err, "books links")
		return
	}
	c.JSON(http.StatusOK, links.NewCollection(value, []links.Link{self}))
}

// GetBookForAuthor handles GET /api/authors/:id/books/:bookId
func (bc *BooksController) GetBookForAuthor(c *gin.Context) {
	book, ok := bc.requireBook(c)
	if !ok {
		return
	}
	bc.respondBook(c, http.StatusOK, dto.NewBookDto(*book))
}

// respondBook writes a single book, with links in hypermedia mode.
func (bc *BooksController) respondBook(c *gin.Context, status int, book dto.BookDto) {
	if bc.hyper.Mode(c) != links.ModeHypermedia {
		c.JSON(status, book)
		return
	}
	bookLinksList, err := bookLinks(bc.hyper.Builder(c), book.AuthorID.String(), book.ID.String())
	if err != nil {
		respondInternalError(c, err, "book links")
		return
	}
	c.JSON(status, links.LinkedRecord{Record: book.Record(), Links: bookLinksList})
}

// CreateBookForAuthor handles POST /api/authors/:id/books
// Validation runs before the author lookup, so an invalid body is 422 even
// for an unknown author.
func (bc *BooksController) CreateBookForAuthor(c *gin.Context) {
	var body dto.BookForCreation
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "invalid book body: "+err.Error())
		return
	}
	if respondInvalid(c, bc.validator.Struct(body), "validate book") {
		return
	}

	authorID, ok := bc.requireAuthor(c)
	if !ok {
		return
	}

	book := body.Entity()
	if err := bc.store.CreateForAuthor(c.Request.Context(), authorID, &book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	bc.audit.LogCreate("book", book.ID.String(), "Created book "+book.Title, nil)
	logging.FromContext(c).Info("book created",
		zap.String("author_id", authorID.String()),
		zap.String("book_id", book.ID.String()),
	)

	location, err := bc.hyper.Builder(c).Href(RouteGetBookForAuthor, map[string]string{
		"id":     authorID.String(),
		"bookId": book.ID.String(),
	})
	if err != nil {
		respondInternalError(c, err, "book location")
		return
	}
	c.Header("Location", location)
	bc.respondBook(c, http.StatusCreated, dto.NewBookDto(book))
}

// DeleteBookForAuthor handles DELETE /api/authors/:id/books/:bookId
func (bc *BooksController) DeleteBookForAuthor(c *gin.Context) {
	book, ok := bc.requireBook(c)
	if !ok {
		return
	}

	if err := bc.store.Delete(c.Request.Context(), book); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	bc.audit.LogDelete("book", book.ID.String(), book.Title)
	logging.FromContext(c).Info("book deleted",
		zap.String("author_id", book.AuthorID.String()),
		zap.String("book_id", book.ID.String()),
	)
	c.Status(http.StatusNoContent)
}

// UpdateBookForAuthor handles PUT /api/authors/:id/books/:bookId
// The body replaces title and description.
func (bc *BooksController) UpdateBookForAuthor(c *gin.Context) {
	var body dto.BookForUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "invalid book body: "+err.Error())
		return
	}
	if respondInvalid(c, bc.validator.Struct(body), "validate book") {
		return
	}

	book, ok := bc.requireBook(c)
	if !ok {
		return
	}

	body.ApplyTo(book)
	if err := bc.store.Update(c.Request.Context(), book); err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	bc.audit.LogUpdate("book", book.ID.String(), "update", "Updated book "+book.Title)
	c.Status(http.StatusNoContent)
}

// PartiallyUpdateBookForAuthor handles PATCH /api/authors/:id/books/:bookId
// The body is a JSON Patch document applied to the book's title and
// description; the result must pass the same validation as PUT.
func (bc *BooksController) PartiallyUpdateBookForAuthor(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondBadRequest(c, "invalid patch body")
		return
	}
	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		respondBadRequest(c, "invalid patch document: "+err.Error())
		return
	}

	book, ok := bc.requireBook(c)
	if !ok {
		return
	}

	original, err := json.Marshal(dto.NewBookForUpdate(*book))
	if err != nil {
		respondInternalError(c, err, "encode book")
		return
	}

	patched, err := patch.Apply(original)
	if err != nil {
		respondValidation(c, dto.FieldErrors{"patch": {err.Error()}})
		return
	}

	var update dto.BookForUpdate
	if err := json.Unmarshal(patched, &update); err != nil {
		respondValidation(c, dto.FieldErrors{"patch": {err.Error()}})
		return
	}
	if respondInvalid(c, bc.validator.Struct(update), "validate book") {
		return
	}

	update.ApplyTo(book)
	if err := bc.store.Update(c.Request.Context(), book); err != nil {
		respondInternalError(c, err, "patch book")
		return
	}

	bc.audit.LogUpdate("book", book.ID.String(), "patch", "Patched book "+book.Title)
	c.Status(http.StatusNoContent)
}
