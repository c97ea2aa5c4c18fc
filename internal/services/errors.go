package services

import (
	"errors"
	"fmt"

	apperrors "github.com/studylegend/mastery-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal error")

	// Question specific errors
	ErrQuestionNotFound = errors.New("question not found")

	// User specific errors
	ErrUserNotFound = errors.New("user not found")

	// Scoring specific errors
	ErrInvalidScoreValue = errors.New("score value outside the declared domain")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// InvalidInputError signals a calculator precondition violation: a value that
// should have been rejected on write reached the scoring path. It indicates
// an upstream validation bug, not a transient condition.
type InvalidInputError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (iie *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input on %s: %s", iie.Field, iie.Message)
}

func (iie *InvalidInputError) Unwrap() error {
	return ErrInvalidScoreValue
}

// StoreError wraps a collaborator I/O failure. Retry policy belongs to the
// storage layer, so the engine propagates these unmodified.
type StoreError struct {
	Op  string `json:"op"`
	Err error  `json:"-"`
}

func (se *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", se.Op, se.Err)
}

func (se *StoreError) Unwrap() error {
	return se.Err
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewInvalidInputError(field, message string, value interface{}) *InvalidInputError {
	return &InvalidInputError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

// IsInvalidInput checks if error represents a calculator precondition violation
func IsInvalidInput(err error) bool {
	var iie *InvalidInputError
	return errors.As(err, &iie) || errors.Is(err, ErrInvalidScoreValue)
}

// IsStoreFailure checks if error represents a collaborator I/O failure
func IsStoreFailure(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
