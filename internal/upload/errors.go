// errors.go - Structured errors for upload endpoint responses
package upload

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried by *Error.
const (
	CodeTransport  = "TRANSPORT"
	CodeHTTPStatus = "HTTP_STATUS"
	CodeRejected   = "REJECTED"
	CodeDecode     = "DECODE"
)

// Error describes a failed exchange with the conversion server.
type Error struct {
	Status  int    `json:"status,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewTransportError wraps a network failure: the request never produced a response.
func NewTransportError(cause error) *Error {
	err := &Error{
		Code:    CodeTransport,
		Message: "could not reach the server",
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewStatusError creates an error for an HTTP error status. message is the
// server's own explanation when it sent one.
func NewStatusError(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = "unexpected response"
	}
	return &Error{
		Status:  status,
		Code:    CodeHTTPStatus,
		Message: message,
	}
}

// NewRejectedError creates an error for a structured reply with success=false.
func NewRejectedError(status int, message string) *Error {
	if message == "" {
		message = "the server rejected the document"
	}
	return &Error{
		Status:  status,
		Code:    CodeRejected,
		Message: message,
	}
}

// NewDecodeError creates an error for a JSON reply that could not be read.
func NewDecodeError(status int, cause error) *Error {
	err := &Error{
		Status:  status,
		Code:    CodeDecode,
		Message: "malformed server response",
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// UserMessage returns the text to show for err in a notification.
func UserMessage(err error) string {
	e, ok := AsError(err)
	if !ok {
		return err.Error()
	}
	switch e.Code {
	case CodeTransport:
		return "Upload failed: could not reach the server"
	case CodeRejected:
		return e.Message
	default:
		return fmt.Sprintf("Upload failed: %s", e.Message)
	}
}
