// Package errors provides the error taxonomy shared by the sync pipeline and
// the catalog API. Pipeline units report failures as AppErrors so a run
// summary can tell a skipped row from a broken page, and handlers can turn
// the same values into consistent JSON responses.
package errors

import (
	"errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// CodeOf returns the AppError code carried by err, or INTERNAL_ERROR for anything else.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternalServer.Code
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Pipeline errors.
var (
	ErrFetchFailed     = &AppError{Code: "FETCH_FAILED", Message: "Source page could not be fetched", StatusCode: http.StatusBadGateway}
	ErrReportStructure = &AppError{Code: "REPORT_STRUCTURE", Message: "Source page does not have the expected structure", StatusCode: http.StatusBadGateway}
	ErrLookupMiss      = &AppError{Code: "LOOKUP_MISS", Message: "Referenced entity is not in the store", StatusCode: http.StatusUnprocessableEntity}
	ErrUnsluggable     = &AppError{Code: "UNSLUGGABLE", Message: "Name cannot be turned into a slug", StatusCode: http.StatusUnprocessableEntity}
	ErrSyncInProgress  = &AppError{Code: "SYNC_IN_PROGRESS", Message: "A sync run is already in progress", StatusCode: http.StatusConflict}

	ErrPipelineNotConfigured = &AppError{Code: "PIPELINE_NOT_CONFIGURED", Message: "Pipeline endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
	ErrInvalidAPIKey         = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)

// Catalog errors.
var (
	ErrAMCNotFound  = &AppError{Code: "AMC_NOT_FOUND", Message: "Asset management company not found", StatusCode: http.StatusNotFound}
	ErrFundNotFound = &AppError{Code: "FUND_NOT_FOUND", Message: "Fund not found", StatusCode: http.StatusNotFound}
)
