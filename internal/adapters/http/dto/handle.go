package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotecraft/quotecraft/internal/domain"
	"github.com/quotecraft/quotecraft/internal/platform/logging"
)

// requestIDContextKey matches the key the request ID middleware stores
// in the gin context.
const requestIDContextKey = "request_id"

// GetRequestID extracts the request ID from the gin.Context.
// Returns empty string if not set.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(requestIDContextKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}

	return ""
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())
		// Extract field details if available
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsPrecondition(err):
		return http.StatusPreconditionFailed, NewErrorResponse(ErrorCodePrecondition, err.Error())

	case domain.IsGeneration(err):
		return http.StatusBadGateway, NewErrorResponse(ErrorCodeGeneration, err.Error())

	case domain.IsEmail(err):
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeEmail, err.Error())

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, err.Error())

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// HandleError writes an error response for a domain error, including the
// request ID when available. Internal errors are logged with detail; the
// response body stays generic.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)

	if requestID := GetRequestID(c); requestID != "" {
		errResp.RequestID = requestID
	}

	if status == http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("internal error",
			"error", err.Error(),
			"request_id", errResp.RequestID,
		)
	}

	c.JSON(status, errResp)
}

// HandleErrorCode writes an error response with a specific error code.
// Use this for adapter-level errors (e.g., binding failures) that don't
// originate from domain errors.
func HandleErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message)

	if requestID := GetRequestID(c); requestID != "" {
		errResp.RequestID = requestID
	}

	c.JSON(HTTPStatusFromCode(code), errResp)
}

// HandleValidationErrors writes a 400 response with field-level validation errors.
func HandleValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	errResp := NewErrorResponseWithDetails(
		ErrorCodeValidation,
		"request validation failed",
		fieldErrors,
	)

	if requestID := GetRequestID(c); requestID != "" {
		errResp.RequestID = requestID
	}

	c.JSON(http.StatusBadRequest, errResp)
}
