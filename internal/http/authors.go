package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/dto"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/links"
	"github.com/mrlokans/library/internal/logging"
	"github.com/mrlokans/library/internal/mapping"
	"github.com/mrlokans/library/internal/paging"
	"github.com/mrlokans/library/internal/shaping"
)

// Query parameters of the authors collection.
const (
	ParamGenre       = "genre"
	ParamSearchQuery = "searchQuery"
	// ParamSortKey is accepted in place of orderBy.
	ParamSortKey = "sortKey"

	defaultAuthorOrder = "Name"
)

// AuthorsController serves the author catalog.
type AuthorsController struct {
	store     AuthorStore
	audit     AuditLogger
	mappings  *mapping.Mappings
	catalog   *shaping.Catalog
	validator *dto.Validator
	limits    paging.Limits
	hyper     *Hypermedia
	now       func() time.Time
}

// NewAuthorsController resolves the author sort mappings up front; a missing
// mapping is returned as an error so the server refuses to start.
func NewAuthorsController(
	store AuthorStore,
	audit AuditLogger,
	registry *mapping.Registry,
	catalog *shaping.Catalog,
	validator *dto.Validator,
	limits paging.Limits,
	hyper *Hypermedia,
	now func() time.Time,
) (*AuthorsController, error) {
	mappings, err := registry.Lookup(dto.AuthorMappingPair)
	if err != nil {
		return nil, err
	}
	if audit == nil {
		audit = nopAudit{}
	}
	if now == nil {
		now = time.Now
	}
	return &AuthorsController{
		store:     store,
		audit:     audit,
		mappings:  mappings,
		catalog:   catalog,
		validator: validator,
		limits:    limits,
		hyper:     hyper,
		now:       now,
	}, nil
}

// authorsQuery is a parsed and validated collection request.
type authorsQuery struct {
	page        paging.Request
	genre       string
	searchQuery string
	sort        []mapping.SortClause
}

// parseAuthorsQuery reads the collection parameters. It writes a 400 response
// and returns false when they are invalid.
func (ac *AuthorsController) parseAuthorsQuery(c *gin.Context) (authorsQuery, bool) {
	pageNumber, ok := queryInt(c, paging.ParamPageNumber)
	if !ok {
		return authorsQuery{}, false
	}
	pageSize, ok := queryInt(c, paging.ParamPageSize)
	if !ok {
		return authorsQuery{}, false
	}

	req := paging.NewRequest(pageNumber, pageSize, ac.limits)
	req.OrderBy, req.OrderByParam = orderByParam(c)
	req.Fields = c.Query(paging.ParamFields)

	if !ac.mappings.Validate(req.OrderBy) {
		respondBadRequest(c, InvalidOrderByMessage)
		return authorsQuery{}, false
	}
	if !ac.catalog.HasProperties(dto.AuthorDtoType, req.Fields) {
		respondBadRequest(c, InvalidFieldsMessage)
		return authorsQuery{}, false
	}
	sort, err := ac.mappings.SortClauses(req.OrderBy)
	if err != nil {
		respondBadRequest(c, InvalidOrderByMessage)
		return authorsQuery{}, false
	}

	genre := strings.TrimSpace(c.Query(ParamGenre))
	searchQuery := strings.TrimSpace(c.Query(ParamSearchQuery))
	req.Filters.Set(ParamGenre, genre)
	req.Filters.Set(ParamSearchQuery, searchQuery)

	return authorsQuery{page: req, genre: genre, searchQuery: searchQuery, sort: sort}, true
}

// orderByParam returns the sort key and the parameter it arrived under.
func orderByParam(c *gin.Context) (string, string) {
	if v, ok := c.GetQuery(paging.ParamOrderBy); ok && strings.TrimSpace(v) != "" {
		return v, paging.ParamOrderBy
	}
	if v, ok := c.GetQuery(ParamSortKey); ok && strings.TrimSpace(v) != "" {
		return v, ParamSortKey
	}
	return defaultAuthorOrder, paging.ParamOrderBy
}

// queryInt parses an optional integer query parameter. Absent means 0.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}

// GetAuthors handles GET /api/authors
// Supports genre filtering, searchQuery, orderBy (or sortKey), fields and paging.
func (ac *AuthorsController) GetAuthors(c *gin.Context) {
	q, ok := ac.parseAuthorsQuery(c)
	if !ok {
		return
	}

	found, total, err := ac.store.List(c.Request.Context(), authors.ListParams{
		Genre:       q.genre,
		SearchQuery: q.searchQuery,
		Sort:        q.sort,
		Offset:      q.page.Offset(),
		Limit:       q.page.PageSize,
	})
	if err != nil {
		if errors.Is(err, mapping.ErrInvalidSortField) {
			respondBadRequest(c, InvalidOrderByMessage)
			return
		}
		respondInternalError(c, err, "list authors")
		return
	}

	now := ac.now()
	page := paging.Map(paging.NewPage(found, total, q.page), func(a entities.Author) dto.AuthorDto {
		return dto.NewAuthorDto(a, now)
	})
	records := shaping.ShapeAll(dto.AuthorRecords(page.Items), q.page.Fields)
	builder := ac.hyper.Builder(c)
	summary := paging.NewSummary(page.Metadata)

	if ac.hyper.Mode(c) == links.ModeHypermedia {
		collection, err := ac.linkedAuthors(builder, records, q.page, page.Metadata)
		if err != nil {
			respondInternalError(c, err, "author links")
			return
		}
		if err := setPaginationHeader(c, summary); err != nil {
			respondInternalError(c, err, "pagination header")
			return
		}
		c.JSON(http.StatusOK, collection)
		return
	}

	var previous, next string
	if page.HasPrevious {
		if previous, err = builder.HrefQuery(RouteGetAuthors, nil, q.page.Query(paging.Previous)); err != nil {
			respondInternalError(c, err, "previous page link")
			return
		}
	}
	if page.HasNext {
		if next, err = builder.HrefQuery(RouteGetAuthors, nil, q.page.Query(paging.Next)); err != nil {
			respondInternalError(c, err, "next page link")
			return
		}
	}
	if err := setPaginationHeader(c, summary.WithLinks(previous, next)); err != nil {
		respondInternalError(c, err, "pagination header")
		return
	}

	c.JSON(http.StatusOK, records)
}

// linkedAuthors wraps shaped authors and the page navigation links.
func (ac *AuthorsController) linkedAuthors(b *links.Builder, records []shaping.Record, req paging.Request, meta paging.Metadata) (links.Collection, error) {
	value := make([]links.LinkedRecord, 0, len(records))
	for _, r := range records {
		authorLinksList, err := authorLinks(b, recordID(r), req.Fields)
		if err != nil {
			return links.Collection{}, err
		}
		value = append(value, links.LinkedRecord{Record: r, Links: authorLinksList})
	}

	set := linkSet{builder: b}
	set.addQuery(RouteGetAuthors, "self", req.Query(paging.Current))
	if meta.HasNext {
		set.addQuery(RouteGetAuthors, "nextPage", req.Query(paging.Next))
	}
	if meta.HasPrevious {
		set.addQuery(RouteGetAuthors, "previousPage", req.Query(paging.Previous))
	}
	if set.err != nil {
		return links.Collection{}, set.err
	}
	return links.NewCollection(value, set.links), nil
}

// GetAuthor handles GET /api/authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	fields := c.Query(paging.ParamFields)
	if !ac.catalog.HasProperties(dto.AuthorDtoType, fields) {
		respondBadRequest(c, InvalidFieldsMessage)
		return
	}

	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	record := shaping.Shape(dto.NewAuthorDto(*author, ac.now()).Record(), fields)
	ac.respondAuthor(c, http.StatusOK, record, fields)
}

// respondAuthor writes a single author, with links in hypermedia mode.
func (ac *AuthorsController) respondAuthor(c *gin.Context, status int, record shaping.Record, fields string) {
	if ac.hyper.Mode(c) != links.ModeHypermedia {
		c.JSON(status, record)
		return
	}
	authorLinksList, err := authorLinks(ac.hyper.Builder(c), recordID(record), fields)
	if err != nil {
		respondInternalError(c, err, "author links")
		return
	}
	c.JSON(status, links.LinkedRecord{Record: record, Links: authorLinksList})
}

// CreateAuthor handles POST /api/authors
// The body may include books, which are created with the author.
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var body dto.AuthorForCreation
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "invalid author body: "+err.Error())
		return
	}
	if respondInvalid(c, ac.validator.Struct(body), "validate author") {
		return
	}

	author := body.Entity()
	if err := ac.store.Create(c.Request.Context(), &author); err != nil {
		respondInternalError(c, err, "create author")
		return
	}

	authorDto := dto.NewAuthorDto(author, ac.now())
	ac.audit.LogCreate("author", author.ID.String(), "Created author "+authorDto.Name, nil)
	logging.FromContext(c).Info("author created",
		zap.String("author_id", author.ID.String()),
		zap.Int("books", len(author.Books)),
	)

	location, err := ac.hyper.Builder(c).Href(RouteGetAuthor, map[string]string{"id": author.ID.String()})
	if err != nil {
		respondInternalError(c, err, "author location")
		return
	}
	c.Header("Location", location)
	ac.respondAuthor(c, http.StatusCreated, authorDto.Record(), "")
}

// BlockAuthorCreation handles POST /api/authors/:id
// Creating an author at a chosen id is not supported: 409 if it is taken, otherwise 404.
func (ac *AuthorsController) BlockAuthorCreation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	exists, err := ac.store.Exists(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "author exists")
		return
	}
	if exists {
		respondConflict(c, "author already exists")
		return
	}
	respondNotFound(c, "author")
}

// DeleteAuthor handles DELETE /api/authors/:id
// The author's books are deleted with it.
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	if err := ac.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "delete author")
		return
	}

	ac.audit.LogDelete("author", id.String(), strings.TrimSpace(author.FirstName+" "+author.LastName))
	logging.FromContext(c).Info("author deleted", zap.String("author_id", id.String()))
	c.Status(http.StatusNoContent)
}

// recordID renders the identity of a record for use in links.
func recordID(r shaping.Record) string {
	switch id := r.ID().(type) {
	case string:
		return id
	case interface{ String() string }:
		return id.String()
	default:
		return ""
	}
}
