// domain/errors.go
package domain

import "fmt"

// Error is an error with an HTTP status attached. Handlers and stores
// return these; the HTTP layer renders them as {"message": ...}.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrNotFound     = &Error{Status: 404, Message: "Not Found"}
	ErrUnauthorized = &Error{Status: 401, Message: "Unauthorized"}
)

// Invalid reports malformed or missing input (400).
func Invalid(format string, args ...any) *Error {
	return &Error{Status: 400, Message: fmt.Sprintf(format, args...)}
}

// Unprocessable reports a missing required field on registration (422).
func Unprocessable(format string, args ...any) *Error {
	return &Error{Status: 422, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness violation. The API exposes these as 400
// with a human-readable message naming the entity.
func Conflict(format string, args ...any) *Error {
	return &Error{Status: 400, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity with a specific message.
// "Owned by another user" is deliberately indistinguishable from "absent".
func NotFound(message string) *Error {
	return &Error{Status: 404, Message: message}
}
