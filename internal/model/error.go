package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeInvalidCampaign    = "INVALID_CAMPAIGN"
	ErrCodeDuplicateName      = "DUPLICATE_NAME"
	ErrCodeCampaignNotFound   = "CAMPAIGN_NOT_FOUND"
	ErrCodeInvalidCount       = "INVALID_COUNT"
	ErrCodeCodeSpaceExhausted = "CODE_SPACE_EXHAUSTED"
	ErrCodeExportDisabled     = "EXPORT_DISABLED"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so that detailed
// errors built with WithDetail still match their sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy of the error with a more specific message.
func (e *DomainError) WithDetail(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidCampaign    = NewDomainError(ErrCodeInvalidCampaign, "Campaign input is invalid")
	ErrDuplicateName      = NewDomainError(ErrCodeDuplicateName, "Campaign name already exists")
	ErrCampaignNotFound   = NewDomainError(ErrCodeCampaignNotFound, "Campaign not found")
	ErrInvalidCount       = NewDomainError(ErrCodeInvalidCount, "Voucher count is out of range")
	ErrCodeSpaceExhausted = NewDomainError(ErrCodeCodeSpaceExhausted, "Could not draw an unused voucher code")
	ErrExportDisabled     = NewDomainError(ErrCodeExportDisabled, "Voucher export is not configured")
)
