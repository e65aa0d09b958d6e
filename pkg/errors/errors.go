// Package errors provides custom error types for the taskboard system.
// These errors enable programmatic error checking across the store,
// auth, and HTTP layers, and carry the error codes surfaced in API
// responses.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the taskboard system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates that the caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates that the caller lacks permission
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       int64
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Code returns the API error code for the missing resource,
// e.g. "POST_NOT_FOUND" for resource "post".
func (e *NotFoundError) Code() string {
	switch e.Resource {
	case "user":
		return "USER_NOT_FOUND"
	case "post":
		return "POST_NOT_FOUND"
	case "comment":
		return "COMMENT_NOT_FOUND"
	case "image":
		return "IMAGE_NOT_FOUND"
	default:
		return "NOT_FOUND"
	}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure on request input
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError represents a uniqueness violation, such as registering
// an email address that is already taken.
type ConflictError struct {
	Resource string
	Field    string
	Message  string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict on %s: %s", e.Resource, e.Field, e.Message)
}

// Is implements errors.Is support
func (e *ConflictError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// Code returns the API error code for the conflict.
func (e *ConflictError) Code() string {
	if e.Resource == "user" && e.Field == "email" {
		return "EMAIL_TAKEN"
	}
	return "CONFLICT"
}

// NewConflictError creates a new ConflictError
func NewConflictError(resource, field, message string) *ConflictError {
	return &ConflictError{Resource: resource, Field: field, Message: message}
}

// ForbiddenError represents an ownership or permission failure.
type ForbiddenError struct {
	Message string
}

// Error implements the error interface
func (e *ForbiddenError) Error() string {
	return e.Message
}

// Is implements errors.Is support
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// NewForbiddenError creates a new ForbiddenError
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

// UnauthorizedError represents an authentication failure. CodeValue
// distinguishes the failure mode (missing header, malformed header,
// invalid token, token subject gone, bad credentials).
type UnauthorizedError struct {
	CodeValue string
	Message   string
}

// Error implements the error interface
func (e *UnauthorizedError) Error() string {
	return e.Message
}

// Is implements errors.Is support
func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// Code returns the API error code for the authentication failure.
func (e *UnauthorizedError) Code() string {
	if e.CodeValue == "" {
		return "UNAUTHORIZED"
	}
	return e.CodeValue
}

// NewUnauthorizedError creates a new UnauthorizedError with the given code.
func NewUnauthorizedError(code, message string) *UnauthorizedError {
	return &UnauthorizedError{CodeValue: code, Message: message}
}

// WrapResource wraps err with resource context for log messages.
// The wrapped error preserves errors.Is/As behavior of err.
func WrapResource(resource string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", resource, err)
}
