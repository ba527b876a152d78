package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/dto"
	"github.com/mrlokans/library/internal/logging"
	"github.com/mrlokans/library/internal/paging"
)

// UnexpectedFaultMessage is the body of every 500 response.
const UnexpectedFaultMessage = "An unexpected fault happened. Try again later"

// Client-facing messages for rejected query strings.
const (
	InvalidOrderByMessage = "Invalid property in query string"
	InvalidFieldsMessage  = "Invalid fields in query string"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// respondValidation sends a 422 response listing the messages per field.
func respondValidation(c *gin.Context, fe dto.FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    "validation_failed",
		Details: fe,
	})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	_ = c.Error(err)
	logging.FromContext(c).Error("internal error", zap.String("context", context), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: UnexpectedFaultMessage})
}

// respondInvalid turns a validation result into a response. It returns true
// when a response was written.
func respondInvalid(c *gin.Context, err error, context string) bool {
	if err == nil {
		return false
	}
	var fe dto.FieldErrors
	if errors.As(err, &fe) {
		respondValidation(c, fe)
		return true
	}
	respondInternalError(c, err, context)
	return true
}

// --- Parameter Parsing ---

// parseUUIDParam extracts and validates a UUID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns uuid.Nil, false.
func parseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return uuid.Nil, false
	}
	return id, true
}

// parseIDList parses a composite key of the form "(id1,id2,...)". The
// parentheses are optional. Duplicate ids are collapsed.
func parseIDList(raw string) ([]uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "(")
	raw = strings.TrimSuffix(raw, ")")

	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, errors.New("no ids")
	}
	return ids, nil
}

// formatIDList renders ids as a composite key "(id1,id2,...)".
func formatIDList(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// setPaginationHeader writes the serialized page summary.
func setPaginationHeader(c *gin.Context, summary interface{ Header() (string, error) }) error {
	value, err := summary.Header()
	if err != nil {
		return err
	}
	c.Header(paging.HeaderName, value)
	return nil
}
