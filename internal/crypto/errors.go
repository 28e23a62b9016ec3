package crypto

import "fmt"

// Error represents a structured error from the crypto package
type Error interface {
	error
	Code() ErrorCode
	Unwrap() error
}

type ErrorCode string

const (
	ErrCodeValidation         ErrorCode = "validation"
	ErrCodeInvalidToken       ErrorCode = "invalid_token"
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	ErrCodeKeyManagement      ErrorCode = "key_management"
	ErrCodeInternal           ErrorCode = "internal"
)

// CryptoError represents a structured error from the crypto package
type CryptoError struct {

	// code is the cryptoerror code
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *CryptoError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *CryptoError) Code() ErrorCode { return e.code }
func (e *CryptoError) Unwrap() error   { return e.wrapped }

// NewValidationError creates a validation error for invalid input
// (bad encoding, malformed hash strings, empty values).
//
// The returned error will have code ErrCodeValidation.
func NewValidationError(msg string) error {
	return &CryptoError{code: ErrCodeValidation, message: msg}
}

// WrapValidationError wraps an existing error as a validation error.
//
// The returned error will have code ErrCodeValidation.
func WrapValidationError(err error, msg string) error {
	return &CryptoError{code: ErrCodeValidation, message: msg, wrapped: err}
}

// NewInvalidTokenError creates an error for access tokens that fail parsing or verification.
//
// The returned error will have code ErrCodeInvalidToken.
func NewInvalidTokenError(msg string) error {
	return &CryptoError{code: ErrCodeInvalidToken, message: msg}
}

// WrapInvalidTokenError wraps an existing error as an invalid token error.
//
// The returned error will have code ErrCodeInvalidToken.
func WrapInvalidTokenError(err error, msg string) error {
	return &CryptoError{code: ErrCodeInvalidToken, message: msg, wrapped: err}
}

// NewInvalidCredentialsError is returned when a password does not match its hash.
//
// The returned error will have code ErrCodeInvalidCredentials.
func NewInvalidCredentialsError(msg string) error {
	return &CryptoError{code: ErrCodeInvalidCredentials, message: msg}
}

// WrapKeyError wraps an error related to signing key handling.
//
// The returned error will have code ErrCodeKeyManagement.
func WrapKeyError(err error, msg string) error {
	return &CryptoError{code: ErrCodeKeyManagement, message: msg, wrapped: err}
}

// NewKeyError creates an error related to signing key handling.
//
// The returned error will have code ErrCodeKeyManagement.
func NewKeyError(msg string) error {
	return &CryptoError{code: ErrCodeKeyManagement, message: msg}
}

// WrapInternalError wraps unexpected failures (e.g. the system random source).
//
// The returned error will have code ErrCodeInternal.
func WrapInternalError(err error, msg string) error {
	return &CryptoError{code: ErrCodeInternal, message: msg, wrapped: err}
}
