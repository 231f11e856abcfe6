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

	registerCustomValidations()
}

func registerCustomValidations() {
	// Profile role validation
	validate.RegisterValidation("profile_role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		for _, r := range []string{"admin", "manager", "staff", "superuser", "user"} {
			if role == r {
				return true
			}
		}
		return false
	})

	// Superuser role tag validation
	validate.RegisterValidation("superuser_role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		for _, r := range []string{"support", "billing", "operations", ""} {
			if role == r {
				return true
			}
		}
		return false
	})

	// Assignment recurrence validation
	validate.RegisterValidation("recurrence", func(fl validator.FieldLevel) bool {
		rec := fl.Field().String()
		for _, r := range []string{"daily", "weekly", "monthly", "once", ""} {
			if rec == r {
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
		case "uuid":
			errors[field] = "Invalid identifier format"
		case "profile_role":
			errors[field] = "Invalid role. Must be: admin, manager, staff, superuser, or user"
		case "superuser_role":
			errors[field] = "Invalid superuser role. Must be: support, billing, or operations"
		case "recurrence":
			errors[field] = "Invalid recurrence. Must be: daily, weekly, monthly, or once"
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
