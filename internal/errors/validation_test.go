package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("score", "must be a whole score between 1 and 5", 7)

	if err.Field != "score" {
		t.Errorf("Expected field to be 'score', got '%s'", err.Field)
	}

	if err.Message != "must be a whole score between 1 and 5" {
		t.Errorf("Unexpected message: '%s'", err.Message)
	}

	if err.Value != 7 {
		t.Errorf("Expected value to be 7, got '%v'", err.Value)
	}

	expected := "validation error on field 'score': must be a whole score between 1 and 5"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("week", "must be a week number between 1 and 52", nil))
	expected := "validation failed: week must be a week number between 1 and 52"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("subject", "is required", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("week", "must be a week number between 1 and 52", "week_number", 60)

	if err.Rule != "week_number" {
		t.Errorf("Expected rule to be 'week_number', got '%s'", err.Rule)
	}

	if err.Field != "week" {
		t.Errorf("Expected field to be 'week', got '%s'", err.Field)
	}
}
