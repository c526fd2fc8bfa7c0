package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/opengovlab/drishti/internal/report/domain"
	"gorm.io/gorm"
)

var (
	ErrInternal       = errors.New("internal_error")
	ErrInvalidRequest = errors.New("invalid_request")
)

type errorPayload struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware maps domain errors collected on the context to
// HTTP responses. Handlers call AbortWithError and let the mapping live
// in one place.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    err.Error(),
			Message: validationErrorMessage(err),
		}
	case errors.Is(err, reportdomain.ErrReportExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "report already exists for this combination",
		}
	case errors.Is(err, reportdomain.ErrNoFindings):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Code:    "no_findings",
			Message: "no findings available for the specified criteria",
		}
	case errors.Is(err, reportdomain.ErrArtifactAbsent):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Code:    "artifact_not_found",
			Message: "pdf file not found on server",
		}
	case errors.Is(err, reportdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Code:    "report_not_found",
			Message: "report not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, reportdomain.ErrInvalidYear),
		errors.Is(err, reportdomain.ErrInvalidMonth),
		errors.Is(err, reportdomain.ErrInvalidState),
		errors.Is(err, reportdomain.ErrInvalidDistrict),
		errors.Is(err, reportdomain.ErrInvalidMetricCategory),
		errors.Is(err, reportdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func validationErrorMessage(err error) string {
	switch {
	case errors.Is(err, reportdomain.ErrInvalidYear):
		return "invalid year"
	case errors.Is(err, reportdomain.ErrInvalidMonth):
		return "invalid month, must be between 1 and 12"
	case errors.Is(err, reportdomain.ErrInvalidState):
		return "state is required"
	case errors.Is(err, reportdomain.ErrInvalidDistrict):
		return "district is required"
	case errors.Is(err, reportdomain.ErrInvalidMetricCategory):
		return "unknown metric category"
	case errors.Is(err, reportdomain.ErrInvalidID):
		return "invalid report id"
	default:
		return "invalid request"
	}
}

// classifyErrorForLog labels errors for the request log.
func classifyErrorForLog(err error) string {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		return "internal_error"
	}
	return payload.Type
}
