package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/paging"
)

// auditLimits bounds the audit log page size.
var auditLimits = paging.Limits{DefaultPageSize: 25, MaxPageSize: 100}

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{reader: reader}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/admin/audit?entityType=author&pageNumber=1&pageSize=25
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	pageNumber, ok := queryInt(c, paging.ParamPageNumber)
	if !ok {
		return
	}
	pageSize, ok := queryInt(c, paging.ParamPageSize)
	if !ok {
		return
	}
	req := paging.NewRequest(pageNumber, pageSize, auditLimits)
	entityType := c.Query("entityType")

	events, total, err := ac.reader.GetEvents(entityType, req.PageSize, req.Offset())
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	page := paging.NewPage(events, total, req)
	if err := setPaginationHeader(c, paging.NewSummary(page.Metadata)); err != nil {
		respondInternalError(c, err, "pagination header")
		return
	}
	c.JSON(http.StatusOK, page.Items)
}
