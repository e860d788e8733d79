package pgerr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeForbidden      = "FORBIDDEN"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeConflict       = "CONFLICT"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrUnauthorized is returned when a request carries no usable identity.
	ErrUnauthorized = New(fiber.StatusUnauthorized, CodeUnauthorized, "authorization required")

	// ErrForbidden is returned when the caller does not own the resource it tries to access.
	ErrForbidden = New(fiber.StatusForbidden, CodeForbidden, "you do not have access to this resource")

	// ErrConflict is returned when a write collides with an existing resource.
	ErrConflict = New(fiber.StatusConflict, CodeConflict, "resource already exists")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

type APIError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e APIError) Msg(format string, parts ...any) *APIError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e APIError) WithExtras(extras Extras) *APIError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations any) *APIError {
	// copy ErrInvalidRequest as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

// Is reports whether target carries the same error code, so that copies made
// through Msg or WithExtras still match their sentinel under errors.Is.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}

// IsNotFound reports whether err is (or wraps) a NOT_FOUND error.
func IsNotFound(err error) bool {
	var pe *APIError
	if !asAPIError(err, &pe) {
		return false
	}
	return pe.ErrorCode == CodeNotFound
}
