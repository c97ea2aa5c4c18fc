package validator

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/studylegend/mastery-service/internal/models"
)

// Validator combines struct-tag validation with practice business rules.
type Validator struct {
	structValidator   *validator.Validate
	practiceValidator *PracticeValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		practiceValidator: NewPracticeValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate performs complete validation (struct tags + practice rules)
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		return err
	}

	if errors := v.practiceValidator.Validate(s); len(errors) > 0 {
		return errors
	}

	return nil
}

// Practice returns the practice business-rule validator
func (v *Validator) Practice() *PracticeValidator {
	return v.practiceValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("week_number", validateWeekNumber)
	validate.RegisterValidation("score_value", validateScoreValue)
	validate.RegisterValidation("subject_name", validateSubjectName)

	// Use json tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateWeekNumber(fl validator.FieldLevel) bool {
	week := fl.Field().Int()
	return week >= models.WeekMin && week <= models.WeekMax
}

// validateScoreValue accepts whole values on the 1-5 self-assessment scale.
func validateScoreValue(fl validator.FieldLevel) bool {
	var value float64
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value = float64(fl.Field().Int())
	case reflect.Float32, reflect.Float64:
		value = fl.Field().Float()
	default:
		return false
	}

	if value != math.Trunc(value) {
		return false
	}
	return value >= models.ScoreValueMin && value <= models.ScoreValueMax
}

func validateSubjectName(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
