package errors

import (
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidationError(t *testing.T) {
	// Test NewValidationError
	err := NewValidationError("studentName", "is required", "Nguyễn An")

	if err.Field != "studentName" {
		t.Errorf("Expected field to be 'studentName', got '%s'", err.Field)
	}

	if err.Message != "is required" {
		t.Errorf("Expected message to be 'is required', got '%s'", err.Message)
	}

	if err.Value != "Nguyễn An" {
		t.Errorf("Expected value to be 'Nguyễn An', got '%v'", err.Value)
	}

	// Test Error method
	expected := "validation error on field 'studentName': is required"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	// Test empty ValidationErrors
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	// Test single ValidationError
	errs = append(errs, *NewValidationError("title", "is required", nil))
	expected := "validation failed: title is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	// Test multiple ValidationErrors
	errs = append(errs, *NewValidationError("classLevel", "must be one of 1, 2, 3, 4, 5", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("studentName", "is required", "required", "Nguyễn An")

	if err.Rule != "required" {
		t.Errorf("Expected rule to be 'required', got '%s'", err.Rule)
	}

	if err.Field != "studentName" {
		t.Errorf("Expected field to be 'studentName', got '%s'", err.Field)
	}
}

func TestValidationErrorsHelpers(t *testing.T) {
	var errs ValidationErrors
	errs.Add("id", "is required", "")
	errs.Add("title", "is too short", "abc")

	prefixed := errs.Prefixed("questions[1].")
	if prefixed[0].Field != "questions[1].id" {
		t.Errorf("Expected prefixed field 'questions[1].id', got '%s'", prefixed[0].Field)
	}
	if errs[0].Field != "id" {
		t.Errorf("Prefixed must not modify the receiver, got '%s'", errs[0].Field)
	}

	fields := errs.Fields()
	if len(fields) != 2 || fields[1] != "title" {
		t.Errorf("Unexpected fields %v", fields)
	}
}

func TestToValidationErrors(t *testing.T) {
	type sample struct {
		Title string `json:"title" validate:"required"`
		Count int    `json:"count" validate:"min=1"`
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	errs := ToValidationErrors(validate.Struct(sample{}))
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d", len(errs))
	}
	if errs[0].Field != "title" || errs[0].Message != "is required" || errs[0].Rule != "required" {
		t.Errorf("Unexpected first error %+v", errs[0])
	}
	if errs[1].Message != "must be at least 1" {
		t.Errorf("Unexpected second message '%s'", errs[1].Message)
	}

	if got := ToValidationErrors(nil); len(got) != 0 {
		t.Errorf("Expected no errors for nil, got %v", got)
	}
}
