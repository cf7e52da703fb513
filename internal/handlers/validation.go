package handlers

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors converts validator errors to user-friendly format.
// Errors that are not validation failures (malformed JSON, bad numbers) become a
// single entry without a field.
func ParseValidationErrors(err error) []ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []ValidationError{{Message: "request body or parameters are malformed"}}
	}

	out := make([]ValidationError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		out = append(out, ValidationError{
			Field:   lowerFirst(fieldError.Field()),
			Message: getErrorMessage(fieldError),
		})
	}
	return out
}

func getErrorMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return field + " must be at least " + fe.Param() + " characters"
		}
		return field + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return field + " must not exceed " + fe.Param() + " characters"
		}
		return field + " must not exceed " + fe.Param()
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), "'", "")
	case "alphanum":
		return field + " must contain only letters and numbers"
	default:
		return field + " is invalid"
	}
}

// lowerFirst maps Go field names to the JSON names clients send
func lowerFirst(s string) string {
	if s == "" || s == "ID" {
		return strings.ToLower(s)
	}
	r := []rune(s)
	if strings.HasSuffix(s, "ID") && len(r) > 2 {
		r[len(r)-1] = 'd'
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
