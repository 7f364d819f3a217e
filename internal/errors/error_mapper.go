package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"tawdifak-listings/internal/listing"
)

// MapError converts a technical error into an AppError carrying the HTTP
// status and the message shown to the user.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	mapped := func(userMessage, code string, status int) *AppError {
		return NewAppError(err.Error(), userMessage, code, status, err)
	}

	switch {
	case stderrors.Is(err, ErrUnknownListing):
		return mapped(MsgUnknownListing, ErrCodeUnknownListing, http.StatusNotFound)
	case stderrors.Is(err, ErrInvalidParameters):
		return mapped(MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest)
	case stderrors.Is(err, listing.ErrWrongMode):
		return mapped(MsgWrongPaginationMode, ErrCodeWrongPaginationMode, http.StatusConflict)
	case stderrors.Is(err, listing.ErrNotMounted), stderrors.Is(err, listing.ErrClosed):
		return mapped(MsgListingNotLoaded, ErrCodeListingNotLoaded, http.StatusConflict)
	case stderrors.Is(err, ErrForbidden):
		return mapped(MsgForbidden, ErrCodeForbidden, http.StatusForbidden)
	case stderrors.Is(err, ErrRateLimited):
		return mapped(MsgRateLimited, ErrCodeRateLimited, http.StatusTooManyRequests)
	case stderrors.Is(err, ErrUnavailable),
		stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return mapped(MsgServiceUnavailable, ErrCodeServiceUnavailable, http.StatusServiceUnavailable)
	default:
		return mapped(MsgInternalError, ErrCodeInternal, http.StatusInternalServerError)
	}
}
