package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error with user-facing and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
}

func (e *AppError) Error() string {
	if e.OriginalError == nil {
		return e.TechnicalMessage
	}
	return fmt.Sprintf("%s: %v", e.TechnicalMessage, e.OriginalError)
}

func (e *AppError) Unwrap() error {
	return e.OriginalError
}

func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Common error codes
const (
	ErrCodeUnknownListing      = "UNKNOWN_LISTING"
	ErrCodeInvalidParameters   = "INVALID_PARAMETERS"
	ErrCodeWrongPaginationMode = "WRONG_PAGINATION_MODE"
	ErrCodeListingNotLoaded    = "LISTING_NOT_LOADED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeRateLimited         = "RATE_LIMITED"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// Sentinels raised by services; MapError recognises them anywhere in the chain.
var (
	ErrUnknownListing    = stderrors.New("unknown listing type")
	ErrInvalidParameters = stderrors.New("invalid parameters")
	ErrRateLimited       = stderrors.New("rate limit exceeded")
	ErrUnavailable       = stderrors.New("data source unavailable")
	ErrForbidden         = stderrors.New("operator token required")
)

// InvalidParameters wraps a validation failure so it maps to a 400.
func InvalidParameters(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameters, fmt.Sprintf(format, args...))
}
