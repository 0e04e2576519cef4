package reclaim

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure reported by the SDK.
type ErrorCode string

const (
	ErrCodeAuthentication ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeInvalidRecord  ErrorCode = "INVALID_RECORD"
	ErrCodeAPI            ErrorCode = "API_ERROR"
)

// Error represents a failure talking to the Reclaim API or a local
// validation failure.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}

	// StatusCode and Body are set when the failure came from an HTTP response.
	StatusCode int
	Body       string

	// Err is the underlying cause for transport and decoding failures.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// apiErrorBody is the JSON shape of a Reclaim error response. The API is
// not consistent about which key carries the text.
type apiErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// IsAuthenticationError returns true if the credential was missing or rejected.
func IsAuthenticationError(err error) bool {
	return hasErrorCode(err, ErrCodeAuthentication)
}

// IsNotFound returns true if the error indicates a task was not found.
func IsNotFound(err error) bool {
	return hasErrorCode(err, ErrCodeNotFound)
}

// IsInvalidRecord returns true if the request was rejected as invalid,
// either locally or by a 422 response.
func IsInvalidRecord(err error) bool {
	return hasErrorCode(err, ErrCodeInvalidRecord)
}

// IsAPIError returns true for any other API, decoding or network failure.
func IsAPIError(err error) bool {
	return hasErrorCode(err, ErrCodeAPI)
}

// hasErrorCode checks if the error has the given error code.
func hasErrorCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// newAuthenticationError creates an authentication error.
func newAuthenticationError(message string) *Error {
	return &Error{
		Code:    ErrCodeAuthentication,
		Message: message,
	}
}

// newNotFoundError creates a generic not found error for a response.
func newNotFoundError(body string) *Error {
	return &Error{
		Code:       ErrCodeNotFound,
		Message:    "Resource not found",
		StatusCode: 404,
		Body:       body,
	}
}

// newTaskNotFoundError creates a task not found error.
func newTaskNotFoundError(taskID string) *Error {
	return &Error{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("Task %s not found", taskID),
		Context:    map[string]interface{}{"id": taskID},
		StatusCode: 404,
	}
}

// newInvalidRecordError creates a validation error.
func newInvalidRecordError(message string) *Error {
	return &Error{
		Code:    ErrCodeInvalidRecord,
		Message: message,
	}
}

// newUnknownTimeSchemeError creates the validation error for a scheme name
// that resolved to nothing.
func newUnknownTimeSchemeError(name string) *Error {
	return &Error{
		Code:    ErrCodeInvalidRecord,
		Message: fmt.Sprintf("Time scheme %q not found", name),
		Context: map[string]interface{}{"time_scheme": name},
	}
}

// newAPIError creates a generic API error for a non-2xx response.
func newAPIError(statusCode int, body string) *Error {
	return &Error{
		Code:       ErrCodeAPI,
		Message:    fmt.Sprintf("API request failed with status %d: %s", statusCode, body),
		Context:    map[string]interface{}{"status": statusCode},
		StatusCode: statusCode,
		Body:       body,
	}
}

// newTransportError wraps a network or decoding failure.
func newTransportError(op string, err error) *Error {
	return &Error{
		Code:    ErrCodeAPI,
		Message: fmt.Sprintf("%s failed: %v", op, err),
		Err:     err,
	}
}

// taskError rewrites a generic not found error so the message names the task.
func taskError(id string, err error) error {
	if IsNotFound(err) {
		nf := newTaskNotFoundError(id)
		var apiErr *Error
		if errors.As(err, &apiErr) {
			nf.Body = apiErr.Body
		}
		return nf
	}
	return err
}
