package rest

import (
	"feedcard/utils/errors"
	"feedcard/utils/logger"

	"github.com/labstack/echo/v4"
)

// handleError converts errors to HTTP responses through AppContextError.
func handleError(c echo.Context, err error, operation string) error {
	appErr, ok := errors.AsAppContextError(err)
	if !ok {
		appErr = errors.NewAppContextError(
			errors.CodeUnknown,
			"internal server error",
			"rest",
			"RESTHandler",
			operation,
			err,
			map[string]interface{}{
				"path":   c.Request().URL.Path,
				"method": c.Request().Method,
			},
		)
	}

	logger.NewContextLogger(nil).WithContext(c.Request().Context()).Error("REST handler error",
		"error", appErr.Error(),
		"error_code", appErr.Code,
		"layer", appErr.Layer,
		"component", appErr.Component,
		"operation", operation,
		"path", c.Request().URL.Path,
		"is_retryable", appErr.IsRetryable(),
	)

	return c.JSON(appErr.HTTPStatusCode(), appErr.ToHTTPResponse())
}

// handleValidationError answers 400 for malformed requests.
func handleValidationError(c echo.Context, message string, field string, value interface{}) error {
	validationErr := errors.NewValidationContextError(
		message,
		"rest",
		"RESTHandler",
		"validate_input",
		map[string]interface{}{
			"field":      field,
			"value":      value,
			"path":       c.Request().URL.Path,
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		},
	)

	logger.NewContextLogger(nil).WithContext(c.Request().Context()).Warn("REST validation error",
		"error", validationErr.Error(),
		"field", field,
		"path", c.Request().URL.Path,
	)
	return c.JSON(validationErr.HTTPStatusCode(), validationErr.ToHTTPResponse())
}
