package errors

import (
	"errors"
	"fmt"
)

// AppError is the error type every layer above the repository speaks.
// Code identifies the failure kind for clients, Message is safe to show to
// users, Err holds the internal cause and is never serialized.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap makes AppError work with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code, so a value built with Newf compares equal to
// the predefined sentinel of the same kind.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

// New creates an AppError with the given business code.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates an AppError with a formatted message, used when the message
// must name the offending value (an email, an id).
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap converts a system error (database, redis, network) into an internal
// AppError, hiding the raw cause from clients.
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Business error codes.
// 4xxxx are client-caused failures, 5xxxx are server-side failures.
const (
	// System errors (50000-50099)
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002

	// Authentication / authorization (40100-40199)
	ErrCodeUnauthorized       = 40100
	ErrCodeInvalidToken       = 40101
	ErrCodeTokenExpired       = 40102
	ErrCodeInvalidCredentials = 40103
	ErrCodeForbidden          = 40104

	// Missing resources (40400-40499)
	ErrCodeNotFound     = 40400
	ErrCodeUserNotFound = 40401

	// Business rule violations (40000-40099)
	ErrCodeBusinessError  = 40000
	ErrCodeEmailDuplicate = 40003
	ErrCodeWeakPassword   = 40005

	// Parameter errors (40900-40999)
	ErrCodeInvalidParams = 40900
	ErrCodeBindError     = 40901
)

// Predefined errors for the common failure kinds.
var (
	ErrInternal      = New(ErrCodeInternal, "internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "database error")
	ErrRedisError    = New(ErrCodeRedisError, "cache service error")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "authentication required")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "invalid token")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "token expired")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "invalid email or password")
	ErrForbidden          = New(ErrCodeForbidden, "insufficient permissions")

	ErrUserNotFound   = New(ErrCodeUserNotFound, "user not found")
	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "email is already registered")
	ErrWeakPassword   = New(ErrCodeWeakPassword, "password too weak (min 8 chars with upper, lower, digit and special)")

	ErrInvalidParams = New(ErrCodeInvalidParams, "invalid parameters")
	ErrBindError     = New(ErrCodeBindError, "malformed request body")
)

// IsAppError reports whether err carries an AppError anywhere in its chain.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err, wrapping unknown errors as
// internal so callers always get a code to map.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal server error")
}
