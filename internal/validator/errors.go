package validator

import (
	"github.com/SAP-F-2025/quiz-service/internal/errors"
)

// Use shared validation errors from errors package
type ValidationError = errors.ValidationError
type ValidationErrors = errors.ValidationErrors

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	return errors.ToValidationErrors(err)
}

// FromResult turns a failed input check into a field error. It returns nil
// for a valid result.
func FromResult(field string, value interface{}, r Result) *ValidationError {
	if r.Valid {
		return nil
	}
	return errors.NewValidationError(field, r.Error, value)
}
