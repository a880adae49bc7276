package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hearthvale/craftforge/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("direction", validateDirection)
	_ = v.RegisterValidation("quality", validateQuality)
	_ = v.RegisterValidation("profession", validateProfession)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "direction":
			errs[field] = "Must be north, south, east, or west"
		case "quality":
			errs[field] = "Must be common, fine, superior, or masterwork"
		case "profession":
			errs[field] = "Invalid profession"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateDirection(fl validator.FieldLevel) bool {
	d := fl.Field().String()
	if d == "" {
		return true
	}
	return domain.ValidDirection(domain.Direction(strings.ToLower(d)))
}

func validateQuality(fl validator.FieldLevel) bool {
	q := fl.Field().String()
	if q == "" {
		return true
	}
	return domain.ValidQuality(domain.Quality(strings.ToLower(q)))
}

func validateProfession(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if p == "" {
		return true
	}
	return domain.ValidProfession(domain.ProfessionType(strings.ToLower(p)))
}
