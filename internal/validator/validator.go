package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/SAP-F-2025/rmib-profile-service/internal/errors"
	"github.com/SAP-F-2025/rmib-profile-service/internal/scoring"
)

// Validator wraps struct-tag validation with the domain's custom rules.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// Validate validates struct tags including the custom domain rules. Failures
// come back as the domain's ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	err := v.structValidator.Struct(s)
	if err == nil {
		return nil
	}
	if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
		return converted
	}
	return err
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("rmib_category", validateRMIBCategory)
	validate.RegisterValidation("achievement_level", validateAchievementLevel)
	validate.RegisterValidation("achievement_rank", validateAchievementRank)
	validate.RegisterValidation("rating_range", validateRatingRange)
	validate.RegisterValidation("achievement_year", validateAchievementYear)

	// Report json field names instead of Go field names in errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateRMIBCategory(fl validator.FieldLevel) bool {
	return scoring.IsValidCategory(fl.Field().String())
}

func validateAchievementLevel(fl validator.FieldLevel) bool {
	return scoring.IsValidLevel(scoring.AchievementLevel(fl.Field().String()))
}

func validateAchievementRank(fl validator.FieldLevel) bool {
	return scoring.IsValidRank(scoring.AchievementRank(fl.Field().String()))
}

func validateRatingRange(fl validator.FieldLevel) bool {
	rating := fl.Field().Int()
	return rating >= scoring.RatingMin && rating <= scoring.RatingMax
}

func validateAchievementYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= 2000 && year <= time.Now().Year()+1
}
