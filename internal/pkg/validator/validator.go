package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// Report reason validation
	validate.RegisterValidation("report_reason", func(fl validator.FieldLevel) bool {
		reason := fl.Field().String()
		validReasons := []string{"spam", "abuse", "illegal", "other"}
		for _, r := range validReasons {
			if reason == r {
				return true
			}
		}
		return false
	})

	// Report target kind validation
	validate.RegisterValidation("target_kind", func(fl validator.FieldLevel) bool {
		kind := fl.Field().String()
		validKinds := []string{"field", "comment"}
		for _, k := range validKinds {
			if kind == k {
				return true
			}
		}
		return false
	})

	// Report resolution action validation
	validate.RegisterValidation("resolve_action", func(fl validator.FieldLevel) bool {
		action := fl.Field().String()
		validActions := []string{"block", "ignore"}
		for _, a := range validActions {
			if action == a {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "report_reason":
			errors[field] = "Invalid reason. Must be: spam, abuse, illegal, or other"
		case "target_kind":
			errors[field] = "Invalid target kind. Must be: field or comment"
		case "resolve_action":
			errors[field] = "Invalid action. Must be: block or ignore"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
