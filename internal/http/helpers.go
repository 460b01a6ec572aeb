package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"versekeeper/internal/auth"
	"versekeeper/internal/database/dberr"
)

// GetUserID extracts the authenticated user's id from the Gin context.
// Returns "" when no user is authenticated.
func GetUserID(c *gin.Context) string {
	return auth.GetUserID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
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

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondStorageError maps persistence errors onto HTTP statuses. The
// resource name feeds the 404 message.
func respondStorageError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, dberr.ErrNotFound):
		respondNotFound(c, resource)
	case errors.Is(err, dberr.ErrConstraintViolation):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "conflicting " + resource})
	case errors.Is(err, dberr.ErrStorageUnavailable):
		log.Printf("Storage unavailable (%s): %v", resource, err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable"})
	default:
		respondInternalError(c, err, resource)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
