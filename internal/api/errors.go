package api

// errors.go defines the error codes used by the conduit API

import (
	"fmt"
	"net/http"
)

// APIError represents a structured error returned by API handlers.
type APIError struct {
	// code is the API error code
	code ErrorCode

	// message is a human-readable error message, returned to the client
	message string

	// wrapped is the optional underlying error (logged, never returned to the client)
	wrapped error
}

func (e *APIError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *APIError) Code() ErrorCode { return e.code }
func (e *APIError) Unwrap() error   { return e.wrapped }
func (e *APIError) Message() string { return e.message }

// ErrorCode identifies the class of an API error and determines the HTTP status.
type ErrorCode string

const (
	// ErrCodeMalformedRequest is used when the request body can't be decoded
	ErrCodeMalformedRequest ErrorCode = "malformed_request"

	// ErrCodeValidation is used when a decoded request fails validation (missing fields, duplicates)
	ErrCodeValidation ErrorCode = "validation"

	// ErrCodeUnauthorized is used when the access token is missing or invalid, or login fails
	ErrCodeUnauthorized ErrorCode = "unauthorized"

	// ErrCodeNotFound is used when the requested resource does not exist
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeRateLimitExceeded is used when the rate limit is exceeded
	// - this is only used in the middleware
	ErrCodeRateLimitExceeded ErrorCode = "rate_limited"

	// ErrCodeRequestTooLarge is used when the request body is too large
	// - this is only used in the middleware
	ErrCodeRequestTooLarge ErrorCode = "request_too_large"

	// ErrCodeInternalError is used when an internal server error occurs
	ErrCodeInternalError ErrorCode = "internal"
)

// HTTPStatus maps the error code to the response status.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCodeMalformedRequest:
		return http.StatusBadRequest
	case ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrCodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// NewMalformedRequestError creates an error for requests that can't be decoded.
func NewMalformedRequestError(msg string) error {
	return &APIError{code: ErrCodeMalformedRequest, message: msg}
}

// WrapMalformedRequestError wraps an existing error as a malformed request error.
func WrapMalformedRequestError(err error, msg string) error {
	return &APIError{code: ErrCodeMalformedRequest, message: msg, wrapped: err}
}

// NewValidationError creates an error for requests that fail validation.
//
// The returned error will have code ErrCodeValidation (422).
func NewValidationError(msg string) error {
	return &APIError{code: ErrCodeValidation, message: msg}
}

// NewUnauthorizedError creates an authentication error.
//
// The returned error will have code ErrCodeUnauthorized (401).
func NewUnauthorizedError(msg string) error {
	return &APIError{code: ErrCodeUnauthorized, message: msg}
}

// WrapUnauthorizedError wraps an existing error as an authentication error.
func WrapUnauthorizedError(err error, msg string) error {
	return &APIError{code: ErrCodeUnauthorized, message: msg, wrapped: err}
}

func NewNotFoundError(msg string) error {
	return &APIError{code: ErrCodeNotFound, message: msg}
}

func NewRateLimitError(msg string) error {
	return &APIError{code: ErrCodeRateLimitExceeded, message: msg}
}

func NewRequestTooLargeError(msg string) error {
	return &APIError{code: ErrCodeRequestTooLarge, message: msg}
}

// WrapInternalError wraps an unexpected error. The client only sees msg.
func WrapInternalError(err error, msg string) error {
	return &APIError{code: ErrCodeInternalError, message: msg, wrapped: err}
}
