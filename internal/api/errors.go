package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"todoapi/internal/domain"
	"todoapi/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error (store-level failures and anything
	// unrecognized)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details such as SQL fragments.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case store.IsNotFoundError(err):
		return "Todo item not found"

	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid todo item data"

	default:
		return "An unexpected error occurred"
	}
}

// ValidationFields extracts the JSON names of the request fields that
// failed validation, for the structured 400 response body. Works for
// both validator.ValidationErrors produced at the DTO boundary and
// domain.ValidationError raised by the service.
func ValidationFields(err error) []string {
	var fields []string

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, jsonFieldName(fe.Field()))
		}
		return fields
	}

	var derr *domain.ValidationError
	if errors.As(err, &derr) {
		return []string{derr.Field}
	}

	return nil
}

// jsonFieldName maps a DTO struct field name to its JSON name. The
// validator reports Go field names; clients know the camelCase ones.
func jsonFieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "IsComplete":
		return "isComplete"
	default:
		return structField
	}
}
