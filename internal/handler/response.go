package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gstdesk/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response. Kind and Fields are set for
// classified invoice failures.
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Kind    string   `json:"kind,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusUnprocessableEntity, "MISSING_FIELD", "required invoice fields are missing"
	case errors.Is(err, domain.ErrInvalidNumericRange):
		return http.StatusUnprocessableEntity, "INVALID_NUMERIC_RANGE", "numeric values are out of range"
	case errors.Is(err, domain.ErrComputationInvariant):
		return http.StatusUnprocessableEntity, "COMPUTATION_INVARIANT_VIOLATION", "invoice amounts are inconsistent"
	case errors.Is(err, domain.ErrRenderingFault):
		return http.StatusInternalServerError, "RENDERING_FAULT", "invoice document could not be rendered"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported format; allowed: html, pdf for documents and csv, xlsx for exports"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT", "invalid request body"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrArchiveFailed):
		return http.StatusBadGateway, "ARCHIVE_FAILED", "rendered invoice could not be archived"
	case errors.Is(err, domain.ErrDeliveryFailed):
		return http.StatusBadGateway, "DELIVERY_FAILED", "invoice email could not be sent"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Classified invoice errors carry their kind, message and offending fields.
func HandleError(c *gin.Context, log *logrus.Logger, err error) {
	status, code, msg := MapDomainError(err)
	apiErr := &APIError{Code: code, Message: msg}

	var invErr *domain.InvoiceError
	switch {
	case errors.As(err, &invErr):
		apiErr.Kind = string(invErr.Kind)
		apiErr.Fields = invErr.Fields
		if status < 500 {
			apiErr.Message = invErr.Message
		}
	case errors.Is(err, domain.ErrInvalidInput):
		apiErr.Message = err.Error()
	}

	if status >= 500 && log != nil {
		requestID, _ := c.Get("request_id")
		log.WithError(err).WithField("request_id", requestID).Error("internal error")
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}
