package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"claimlens/internal/domain"
	"claimlens/internal/evaluator"
	"claimlens/internal/ingest"
	"claimlens/internal/reasoner"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain and pipeline errors to HTTP status codes
// and error codes. Pipeline failures keep their stage-specific detail so a
// client can tell an unreadable upload apart from a reasoner outage.
func MapDomainError(err error) (status int, code, msg string) {
	var (
		ingestErr    *ingest.IngestionError
		authErr      *reasoner.AuthError
		transportErr *reasoner.TransportError
		serviceErr   *reasoner.ServiceError
		schemaErr    *evaluator.SchemaError
		decisionErr  *evaluator.UnrecognizedDecisionError
	)
	switch {
	case errors.As(err, &ingestErr):
		return http.StatusUnprocessableEntity, "UNREADABLE_DOCUMENT",
			fmt.Sprintf("could not read document %q", ingestErr.FileName)
	case errors.As(err, &authErr):
		return http.StatusBadGateway, "REASONER_AUTH_FAILED",
			"the reasoning service rejected the configured credential"
	case errors.As(err, &transportErr):
		return http.StatusServiceUnavailable, "REASONER_UNREACHABLE",
			"could not reach the reasoning service"
	case errors.As(err, &serviceErr):
		return http.StatusBadGateway, "REASONER_SERVICE_ERROR",
			fmt.Sprintf("the reasoning service failed: %s", serviceErr.Detail)
	case errors.As(err, &schemaErr):
		return http.StatusBadGateway, "UNVALIDATABLE_RESPONSE",
			"the reasoning service returned a response that does not match the expected schema"
	case errors.As(err, &decisionErr):
		return http.StatusBadGateway, "UNRECOGNIZED_DECISION",
			fmt.Sprintf("the reasoning service returned an unrecognized decision %q", decisionErr.Decision)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrEmptyNarrative):
		return http.StatusBadRequest, "EMPTY_NARRATIVE", "claim narrative must not be empty"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, doc, docx, txt, md"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}
