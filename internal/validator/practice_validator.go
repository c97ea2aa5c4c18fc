package validator

import (
	"math"
	"strings"

	apperrors "github.com/studylegend/mastery-service/internal/errors"
	"github.com/studylegend/mastery-service/internal/models"
)

// PracticeInput is implemented by requests that record a practice attempt.
// Keeping it an interface lets the service layer own its request structs
// without a dependency cycle.
type PracticeInput interface {
	PracticeFields() (subject string, week int, itemIndex int, value float64)
}

// PracticeValidator enforces the business rules that struct tags cannot
// express: whole-number scores, non-blank subjects after trimming, and the
// closed [1,5] score range.
type PracticeValidator struct{}

func NewPracticeValidator() *PracticeValidator {
	return &PracticeValidator{}
}

// Validate dispatches on known input kinds; unknown values pass.
func (pv *PracticeValidator) Validate(s interface{}) apperrors.ValidationErrors {
	switch input := s.(type) {
	case PracticeInput:
		subject, week, itemIndex, value := input.PracticeFields()
		return pv.ValidateAttempt(subject, week, itemIndex, value)
	case *models.ScoreEntry:
		if err := pv.ValidateScoreValue(input.Value); err != nil {
			return apperrors.ValidationErrors{*err}
		}
	}
	return nil
}

// ValidateAttempt checks every constraint the score-update workflow requires
// before any write happens.
func (pv *PracticeValidator) ValidateAttempt(subject string, week, itemIndex int, value float64) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	if strings.TrimSpace(subject) == "" {
		errs = append(errs, *apperrors.NewValidationErrorWithRule(
			"subject", "must be a non-blank subject name", "subject_name", subject))
	}
	if week < models.WeekMin || week > models.WeekMax {
		errs = append(errs, *apperrors.NewValidationErrorWithRule(
			"week", "must be a week number between 1 and 52", "week_number", week))
	}
	if itemIndex < 0 {
		errs = append(errs, *apperrors.NewValidationErrorWithRule(
			"item_index", "must be 0 or greater", "gte", itemIndex))
	}
	if err := pv.ValidateScoreValue(value); err != nil {
		errs = append(errs, *err)
	}

	return errs
}

// ValidateScoreValue checks the closed [1,5] whole-number score domain.
func (pv *PracticeValidator) ValidateScoreValue(value float64) *apperrors.ValidationError {
	if value != math.Trunc(value) || value < models.ScoreValueMin || value > models.ScoreValueMax {
		return apperrors.NewValidationErrorWithRule(
			"score", "must be a whole score between 1 and 5", "score_value", value)
	}
	return nil
}
