package service

import "fmt"

// API error codes. Handlers map them onto the response envelope; the status
// is fixed per code at the call site.
const (
	CodeUnauthenticated  = "unauthenticated"
	CodeNotFound         = "not_found"
	CodeValidationFailed = "validation_failed"
	CodeConflict         = "conflict"
)

// Error carries an API error code and HTTP status through the service layer.
// Anything that is not a *Error is treated as internal by the handlers.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string, status int) *Error {
	return &Error{Code: code, Message: msg, Status: status}
}
