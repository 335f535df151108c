// errors.go - Structured error handling for emulator responses
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIError represents a structured error reply. The body mirrors the
// conversion server's {success: false, error: "..."} shape.
type APIError struct {
	Status  int    `json:"-"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewNoFileError creates a 400 error for a form without a usable document
func NewNoFileError(field string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "NO_FILE",
		Message: fmt.Sprintf("No file selected: %s", field),
	}
}

// NewUnsupportedTypeError creates a 400 error for a disallowed extension
func NewUnsupportedTypeError(filename string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "UNSUPPORTED_TYPE",
		Message: "File type not allowed",
		Details: filename,
	}
}

// NewTooLargeError creates a 413 Request Entity Too Large error
func NewTooLargeError(limit string) *APIError {
	return &APIError{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "FILE_TOO_LARGE",
		Message: fmt.Sprintf("File too large. Maximum size: %s", limit),
	}
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(resource string, id string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// isTooLarge reports whether err came from the body limit middleware.
func isTooLarge(err error) bool {
	var he *echo.HTTPError
	return errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge
}

// NewErrorHandler returns an echo error handler that writes every error
// as an APIError body.
// Usage: e.HTTPErrorHandler = api.NewErrorHandler(logger, bodyLimit)
func NewErrorHandler(logger *slog.Logger, bodyLimit string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var apiErr *APIError
		var httpErr *echo.HTTPError

		switch {
		case errors.As(err, &apiErr):
		case isTooLarge(err):
			apiErr = NewTooLargeError(bodyLimit)
		case errors.As(err, &httpErr):
			apiErr = &APIError{
				Status:  httpErr.Code,
				Code:    "HTTP_ERROR",
				Message: fmt.Sprintf("%v", httpErr.Message),
			}
		default:
			apiErr = &APIError{
				Status:  http.StatusInternalServerError,
				Code:    "UNKNOWN_ERROR",
				Message: "An unexpected error occurred",
				Details: err.Error(),
			}
		}

		if apiErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", "path", c.Request().URL.Path, "code", apiErr.Code, "error", err)
		}

		if err := c.JSON(apiErr.Status, apiErr); err != nil {
			logger.Warn("write error response", "error", err)
		}
	}
}
