package http

import (
	"github.com/gin-gonic/gin"

	"github.com/quotecraft/quotecraft/internal/adapters/http/dto"
)

// MapDomainError maps a domain error to an HTTP status code and error
// response. Exposed at this level for middleware and tests; handlers use
// dto.HandleError directly.
func MapDomainError(err error) (int, *dto.ErrorResponse) {
	return dto.MapDomainError(err)
}

// RespondWithError writes an error response to the gin.Context.
func RespondWithError(c *gin.Context, err error) {
	dto.HandleError(c, err)
}

// RespondWithErrorCode writes an error response with a specific error code.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	dto.HandleErrorCode(c, code, message)
}

// RespondWithValidationErrors writes a 400 response with field-level
// validation errors.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	dto.HandleValidationErrors(c, fieldErrors)
}

// AbortWithError aborts the request chain and writes an error response.
// Use this in middleware when you want to stop further processing.
func AbortWithError(c *gin.Context, err error) {
	status, errResp := dto.MapDomainError(err)

	if requestID := dto.GetRequestID(c); requestID != "" {
		errResp.RequestID = requestID
	}

	c.AbortWithStatusJSON(status, errResp)
}
