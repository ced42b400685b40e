package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when a required request field is missing or empty.
	ErrValidation = errors.New("all fields are required")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserNotFound is returned when no user has the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid password")
	// ErrMissingToken is returned when a protected request carries no bearer token.
	ErrMissingToken = errors.New("token not provided")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorResponse is the body for 400-class failures, which carry an "error" field.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body for denials and successes, which carry a "message" field.
type MessageResponse struct {
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	// UseMessageField selects {"message": ...} instead of {"error": ...}.
	UseMessageField bool
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// Body returns the JSON payload for the error.
func (e *HTTPError) Body() interface{} {
	if e.UseMessageField {
		return MessageResponse{Message: e.Message}
	}
	return ErrorResponse{Error: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognised is
// reported as 400 with the underlying message, matching the catch-all path of
// both handlers.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, ErrValidation.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusBadRequest, storeMessage(err), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrUserNotFound):
		return denial(http.StatusNotFound, err, "NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return denial(http.StatusUnauthorized, err, "INVALID_CREDENTIALS")
	case errors.Is(err, ErrMissingToken):
		return denial(http.StatusUnauthorized, err, "MISSING_TOKEN")
	case errors.Is(err, ErrInvalidToken):
		return denial(http.StatusForbidden, err, "INVALID_TOKEN")
	default:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BAD_REQUEST")
	}
}

func denial(status int, err error, code string) *HTTPError {
	e := NewHTTPError(status, sentinelMessage(err), code)
	e.UseMessageField = true
	return e
}

// sentinelMessage returns the text of the first taxonomy sentinel in err's chain.
func sentinelMessage(err error) string {
	for _, s := range []error{ErrUserNotFound, ErrInvalidCredentials, ErrMissingToken, ErrInvalidToken} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}

// StoreError pairs a taxonomy sentinel with the raw error the store reported.
type StoreError struct {
	Kind error
	Err  error
}

// NewStoreError classifies err as kind.
func NewStoreError(kind, err error) *StoreError {
	return &StoreError{Kind: kind, Err: err}
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both the sentinel and the driver error to errors.Is/As.
func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// storeMessage returns the store's own text when err carries a StoreError.
func storeMessage(err error) string {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Err.Error()
	}
	return err.Error()
}
