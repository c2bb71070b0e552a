package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/legatepro/legatepro/internal/activity/domain"
	authdomain "github.com/legatepro/legatepro/internal/auth/domain"
	billingdashboarddomain "github.com/legatepro/legatepro/internal/billingdashboard/domain"
	estatedomain "github.com/legatepro/legatepro/internal/estate/domain"
	expensedomain "github.com/legatepro/legatepro/internal/expense/domain"
	invoicedomain "github.com/legatepro/legatepro/internal/invoice/domain"
	taskdomain "github.com/legatepro/legatepro/internal/task/domain"
	timeentrydomain "github.com/legatepro/legatepro/internal/timeentry/domain"
	workspacedomain "github.com/legatepro/legatepro/internal/workspace/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not_found")
)

// ErrorHandlingMiddleware turns errors attached to the gin context into a
// uniform JSON payload after the handler chain runs.
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

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{{Field: field, Code: code, Message: message}},
	}
}

// badRequestErrors carry a field problem the caller can fix.
var badRequestErrors = []error{
	authdomain.ErrInvalidEmail,
	authdomain.ErrInvalidPassword,
	authdomain.ErrInvalidName,
	estatedomain.ErrMissingDisplayName,
	invoicedomain.ErrInvalidAmount,
	invoicedomain.ErrInvalidStatus,
	timeentrydomain.ErrMissingDuration,
	timeentrydomain.ErrInvalidDuration,
	timeentrydomain.ErrInvalidRate,
	expensedomain.ErrInvalidAmount,
	expensedomain.ErrMissingDescription,
	taskdomain.ErrMissingTitle,
	taskdomain.ErrInvalidStatus,
	workspacedomain.ErrInvalidCurrency,
	workspacedomain.ErrInvalidHourlyRate,
	activitydomain.ErrMissingAction,
}

var unauthorizedErrors = []error{
	ErrUnauthorized,
	authdomain.ErrInvalidCredentials,
	authdomain.ErrSessionExpired,
	authdomain.ErrSessionNotFound,
	estatedomain.ErrMissingOwner,
	invoicedomain.ErrMissingOwner,
	timeentrydomain.ErrMissingOwner,
	expensedomain.ErrMissingOwner,
	taskdomain.ErrMissingOwner,
	workspacedomain.ErrMissingOwner,
	activitydomain.ErrMissingOwner,
	billingdashboarddomain.ErrInvalidTenant,
}

var notFoundErrors = []error{
	ErrNotFound,
	gorm.ErrRecordNotFound,
	estatedomain.ErrEstateNotFound,
	estatedomain.ErrCollaboratorNotFound,
	invoicedomain.ErrInvoiceNotFound,
	invoicedomain.ErrEstateNotFound,
	timeentrydomain.ErrEntryNotFound,
	timeentrydomain.ErrEstateNotFound,
	timeentrydomain.ErrInvoiceNotFound,
	expensedomain.ErrExpenseNotFound,
	expensedomain.ErrEstateNotFound,
	taskdomain.ErrTaskNotFound,
	taskdomain.ErrEstateNotFound,
}

// conflictErrors reject an operation the current state forbids.
var conflictErrors = []error{
	authdomain.ErrEmailTaken,
	estatedomain.ErrEstateClosed,
	estatedomain.ErrCollaboratorExists,
	estatedomain.ErrCollaboratorIsOwner,
	invoicedomain.ErrTransitionNotAllowed,
	invoicedomain.ErrNotDraft,
	timeentrydomain.ErrAlreadyBilled,
	timeentrydomain.ErrEntryArchived,
	expensedomain.ErrExpenseBilled,
	taskdomain.ErrTaskAlreadyDone,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func mapError(err error) (int, errorPayload) {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case matchesAny(err, badRequestErrors):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case matchesAny(err, unauthorizedErrors):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden), errors.Is(err, estatedomain.ErrCollaboratorNotAllowed):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case matchesAny(err, notFoundErrors):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case matchesAny(err, conflictErrors):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	}

	// Anything unrecognized is treated as an upstream failure; partial
	// or zeroed data is never served in its place.
	return http.StatusServiceUnavailable, errorPayload{
		Type:    "service_unavailable",
		Message: "temporarily unavailable",
	}
}
