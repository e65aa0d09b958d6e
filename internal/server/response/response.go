// Package response provides standardized HTTP response structures and helpers
// for the taskboard API server. All API responses follow a consistent format
// with a data field for successful responses and an error field for failures.
package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/yesaroun/taskboard/pkg/errors"
)

// Response represents the standardized API response structure.
// All endpoints return this format for consistency.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{
		Data:  data,
		Error: nil,
	}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Data: nil,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors are ignored as headers are already sent (best effort)
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// Created writes a successful response with 201 status.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Success(data))
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail("BAD_REQUEST", message, details))
}

// Unauthorized writes a 401 error response with the given code.
func Unauthorized(w http.ResponseWriter, code, message string) {
	if code == "" {
		code = "UNAUTHORIZED"
	}
	JSON(w, http.StatusUnauthorized, Fail(code, message, ""))
}

// Forbidden writes a 403 error response.
func Forbidden(w http.ResponseWriter, message string) {
	JSON(w, http.StatusForbidden, Fail("FORBIDDEN", message, ""))
}

// NotFound writes a 404 error response with the given code.
func NotFound(w http.ResponseWriter, code, message string) {
	if code == "" {
		code = "NOT_FOUND"
	}
	JSON(w, http.StatusNotFound, Fail(code, message, ""))
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	JSON(w, http.StatusMethodNotAllowed, Fail(
		"METHOD_NOT_ALLOWED",
		"Method not allowed",
		"Method "+method+" is not supported for this endpoint",
	))
}

// Conflict writes a 409 error response with the given code.
func Conflict(w http.ResponseWriter, code, message string) {
	if code == "" {
		code = "CONFLICT"
	}
	JSON(w, http.StatusConflict, Fail(code, message, ""))
}

// UnprocessableEntity writes a 422 error response for validation failures.
func UnprocessableEntity(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusUnprocessableEntity, Fail("VALIDATION_ERROR", message, details))
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter, message string) {
	JSON(w, http.StatusTooManyRequests, Fail(
		"RATE_LIMITED",
		"Rate limit exceeded",
		message,
	))
}

// InternalError writes a 500 error response.
func InternalError(w http.ResponseWriter, _ error) {
	// The actual error is logged by middleware; don't expose details
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// NotImplemented writes a 501 error response.
func NotImplemented(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotImplemented, Fail(
		"NOT_IMPLEMENTED",
		"Not implemented",
		message,
	))
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail(
		"SERVICE_UNAVAILABLE",
		"Service unavailable",
		message,
	))
}

// ErrorFromType maps typed errors to appropriate HTTP responses.
func ErrorFromType(w http.ResponseWriter, err error) {
	var (
		notFound     *errors.NotFoundError
		validation   *errors.ValidationError
		conflict     *errors.ConflictError
		forbidden    *errors.ForbiddenError
		unauthorized *errors.UnauthorizedError
	)
	switch {
	case stderrors.As(err, &notFound):
		NotFound(w, notFound.Code(), notFound.Error())
	case stderrors.As(err, &validation):
		UnprocessableEntity(w, validation.Error(), "")
	case stderrors.As(err, &conflict):
		Conflict(w, conflict.Code(), conflict.Error())
	case stderrors.As(err, &forbidden):
		Forbidden(w, forbidden.Error())
	case stderrors.As(err, &unauthorized):
		Unauthorized(w, unauthorized.Code(), unauthorized.Error())
	case errors.Is(err, errors.ErrNotFound):
		NotFound(w, "", err.Error())
	case errors.Is(err, errors.ErrAlreadyExists):
		Conflict(w, "", err.Error())
	case errors.Is(err, errors.ErrForbidden):
		Forbidden(w, err.Error())
	case errors.Is(err, errors.ErrUnauthorized):
		Unauthorized(w, "", "authentication required")
	case errors.Is(err, errors.ErrInvalidInput):
		UnprocessableEntity(w, err.Error(), "")
	default:
		InternalError(w, err)
	}
}
