package utils

import (
	"fmt"
	"strings"

	"tawdifak-listings/internal/errors"
	"tawdifak-listings/pkg/logger"
)

// LogAndMapError logs technical details and returns the user-facing AppError.
// params are alternating key/value pairs added to the log line.
func LogAndMapError(err error, operation string, params ...interface{}) *errors.AppError {
	appErr := errors.MapError(err)
	if appErr == nil {
		return nil
	}

	var b strings.Builder
	for i := 0; i+1 < len(params); i += 2 {
		fmt.Fprintf(&b, " %v=%v", params[i], params[i+1])
	}
	if appErr.HTTPStatus >= 500 {
		logger.GlobalLogger.Errorf("%s failed: code=%s%s error=%s", operation, appErr.Code, b.String(), appErr.TechnicalMessage)
	} else {
		logger.GlobalLogger.Warnf("%s rejected: code=%s%s error=%s", operation, appErr.Code, b.String(), appErr.TechnicalMessage)
	}
	return appErr
}

// WrapError adds context to an error while preserving the original.
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}
