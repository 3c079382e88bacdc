package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var (
	// ErrNotFound is returned when a fetch-by-id matches nothing. It is
	// surfaced as 409 rather than 404 to stay wire-compatible with existing
	// clients of this API.
	ErrNotFound = errors.New("requested resource doesn't exist")
	// ErrUnauthorized is returned when the caller does not own the resource.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidPassword is returned on a failed login attempt for a known
	// account.
	ErrInvalidPassword = errors.New("invalid password supplied")
)

// ValidationError carries field-level messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// FromValidator converts a validator error into field-level messages keyed
// by the json names registered on the validator instance.
func FromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError("_schema", err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return &ValidationError{Fields: fields}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// MapToHTTP maps domain errors to HTTP errors at the controller boundary.
// The router's error handler renders the message value as the response body.
func MapToHTTP(err error) *echo.HTTPError {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusConflict, ve.Fields)
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusConflict, map[string]string{"desc": ErrNotFound.Error()})
	case errors.Is(err, ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{"desc": ErrUnauthorized.Error()})
	case errors.Is(err, ErrInvalidPassword):
		return echo.NewHTTPError(http.StatusConflict, map[string]string{"err": ErrInvalidPassword.Error()})
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"desc": "internal server error"})
	}
}
