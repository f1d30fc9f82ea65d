package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserExists is returned when registering an email that is taken.
	ErrUserExists = errors.New("email is already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The same error covers unknown email and wrong password so login does
	// not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a user record is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken is returned when a reset token fails verification.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnauthorized is returned when a request lacks a valid session token.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden is returned when the authenticated role is insufficient.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrCategoryNotFound is returned when a referenced category is absent.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrProductNotFound is returned when a product is absent.
	ErrProductNotFound = errors.New("product not found")
	// ErrSlugExists is returned when a category slug is taken.
	ErrSlugExists = errors.New("slug already exists")
	// ErrValidation is returned when input fails semantic validation.
	ErrValidation = errors.New("invalid input")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
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

// MapErrorToHTTP maps domain errors to HTTP errors. Register and slug
// conflicts answer 400 rather than 409 to keep the observed external
// interface stable for the frontend.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case errors.Is(err, ErrSlugExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SLUG_EXISTS")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
