package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/dto"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/logging"
)

// AuthorCollectionsController creates and fetches sets of authors addressed
// by a composite key "(id1,id2,...)".
type AuthorCollectionsController struct {
	store     AuthorStore
	audit     AuditLogger
	validator *dto.Validator
	hyper     *Hypermedia
	now       func() time.Time
}

func NewAuthorCollectionsController(store AuthorStore, audit AuditLogger, validator *dto.Validator, hyper *Hypermedia, now func() time.Time) *AuthorCollectionsController {
	if audit == nil {
		audit = nopAudit{}
	}
	if now == nil {
		now = time.Now
	}
	return &AuthorCollectionsController{
		store:     store,
		audit:     audit,
		validator: validator,
		hyper:     hyper,
		now:       now,
	}
}

// GetAuthorCollection handles GET /api/authorcollections/:ids
// Every id must exist, otherwise the whole request is 404.
func (acc *AuthorCollectionsController) GetAuthorCollection(c *gin.Context) {
	ids, err := parseIDList(c.Param("ids"))
	if err != nil {
		respondBadRequest(c, "invalid ids")
		return
	}

	found, err := acc.store.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		respondInternalError(c, err, "get author collection")
		return
	}
	if len(found) != len(ids) {
		respondNotFound(c, "author")
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorDtos(found, acc.now()))
}

// CreateAuthorCollection handles POST /api/authorcollections
// All authors are created in one transaction or none are.
func (acc *AuthorCollectionsController) CreateAuthorCollection(c *gin.Context) {
	var body []dto.AuthorForCreation
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "invalid author collection body: "+err.Error())
		return
	}
	if len(body) == 0 {
		respondBadRequest(c, "author collection is empty")
		return
	}
	if respondInvalid(c, acc.validator.Slice(body), "validate author collection") {
		return
	}

	created := make([]entities.Author, len(body))
	for i, a := range body {
		created[i] = a.Entity()
	}
	if err := acc.store.CreateMany(c.Request.Context(), created); err != nil {
		respondInternalError(c, err, "create author collection")
		return
	}

	ids := make([]uuid.UUID, len(created))
	for i, a := range created {
		ids[i] = a.ID
	}
	key := formatIDList(ids)

	acc.audit.LogCreate("author_collection", key, "Created author collection", body)
	logging.FromContext(c).Info("author collection created", zap.Int("authors", len(created)))

	location, err := acc.hyper.Builder(c).Href(RouteGetAuthorCollection, map[string]string{"ids": key})
	if err != nil {
		respondInternalError(c, err, "author collection location")
		return
	}
	c.Header("Location", location)
	c.JSON(http.StatusCreated, dto.NewAuthorDtos(created, acc.now()))
}
