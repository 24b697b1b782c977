// Package error defines domain-specific errors for the LinkFinancer dashboard.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidYear is returned when the year filter is not a plausible calendar year.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidMonth is returned when the reference month is not in YYYY-MM format.
	ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

	// ErrUnsupportedLocale is returned when month names are not available for a locale.
	ErrUnsupportedLocale = errors.New("unsupported locale")

	// ErrUnsupportedExportFormat is returned when the export format is unknown.
	ErrUnsupportedExportFormat = errors.New("export format must be: xlsx or pdf")

	// ErrTooManyTransactions is returned when a stateless aggregation request is too large.
	ErrTooManyTransactions = errors.New("too many transactions in request")

	// ErrExportFailed is returned when the report file cannot be rendered.
	ErrExportFailed = errors.New("failed to render report")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidYear             DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidMonth            DashboardErrorCode = "DSH-010002"
	ErrCodeUnsupportedLocale       DashboardErrorCode = "DSH-010003"
	ErrCodeUnsupportedExportFormat DashboardErrorCode = "DSH-010004"
	ErrCodeTooManyTransactions     DashboardErrorCode = "DSH-010005"
	ErrCodeInvalidAggregationBody  DashboardErrorCode = "DSH-010006"

	// Export errors (02XXXX)
	ErrCodeExportFailed DashboardErrorCode = "DSH-020001"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
