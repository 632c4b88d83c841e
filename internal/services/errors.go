package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorInvalid            ErrorCode = "invalid"
	ErrorInvalidCredentials ErrorCode = "invalid_credentials"
	ErrorNotApproved        ErrorCode = "not_approved"
	ErrorUsernameTaken      ErrorCode = "username_taken"
	ErrorUnauthorized       ErrorCode = "unauthorized"
	ErrorForbidden          ErrorCode = "forbidden"
	ErrorNotFound           ErrorCode = "not_found"
	ErrorConflict           ErrorCode = "conflict"
	ErrorBadGateway         ErrorCode = "bad_gateway"
	ErrorTooManyRequests    ErrorCode = "too_many_requests"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

// Is matches any ServiceError carrying the same code, so sentinels work with errors.Is.
func (e *ServiceError) Is(target error) bool {
	var se *ServiceError
	if !errors.As(target, &se) {
		return false
	}
	return se.Code == e.Code
}

var (
	ErrInvalidCredentials = &ServiceError{Code: ErrorInvalidCredentials, Message: "invalid credentials"}
	ErrNotApproved        = &ServiceError{Code: ErrorNotApproved, Message: "account not approved"}
	ErrUsernameTaken      = &ServiceError{Code: ErrorUsernameTaken, Message: "username taken"}
	ErrUnauthorized       = &ServiceError{Code: ErrorUnauthorized, Message: "administrator role required"}
	ErrInvalidTransition  = &ServiceError{Code: ErrorConflict, Message: "invalid navigation transition"}
)

func NewInvalidError(msg string) error   { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewForbiddenError(msg string) error { return &ServiceError{Code: ErrorForbidden, Message: msg} }
func NewNotFoundError(msg string) error  { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error  { return &ServiceError{Code: ErrorConflict, Message: msg} }

func NewBadGatewayError(msg string) error { return &ServiceError{Code: ErrorBadGateway, Message: msg} }

func NewTooManyRequestsError(msg string) error {
	return &ServiceError{Code: ErrorTooManyRequests, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}
