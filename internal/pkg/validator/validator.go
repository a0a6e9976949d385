package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

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
	validate.RegisterValidation("ticket_status", func(fl validator.FieldLevel) bool {
		return oneOf(fl.Field().String(), "TODO", "IN_PROGRESS", "IN_REVIEW", "DONE")
	})

	validate.RegisterValidation("ticket_priority", func(fl validator.FieldLevel) bool {
		return oneOf(fl.Field().String(), "LOW", "MEDIUM", "HIGH", "URGENT", "")
	})

	validate.RegisterValidation("withdrawal_action", func(fl validator.FieldLevel) bool {
		return oneOf(fl.Field().String(), "APPROVE", "REJECT", "MARK_PAID")
	})

	validate.RegisterValidation("platform_role", func(fl validator.FieldLevel) bool {
		return oneOf(fl.Field().String(), "SITE_OWNER", "SITE_ADMIN", "CUSTOMER", "CREATIVE")
	})

	validate.RegisterValidation("company_role", func(fl validator.FieldLevel) bool {
		return oneOf(fl.Field().String(), "OWNER", "PM", "BILLING", "MEMBER", "")
	})
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
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
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "uuid":
			errors[field] = "Invalid identifier"
		case "ticket_status":
			errors[field] = "Invalid status. Must be: TODO, IN_PROGRESS, IN_REVIEW, or DONE"
		case "ticket_priority":
			errors[field] = "Invalid priority. Must be: LOW, MEDIUM, HIGH, or URGENT"
		case "withdrawal_action":
			errors[field] = "Invalid action. Must be: APPROVE, REJECT, or MARK_PAID"
		case "platform_role":
			errors[field] = "Invalid role. Must be: SITE_OWNER, SITE_ADMIN, CUSTOMER, or CREATIVE"
		case "company_role":
			errors[field] = "Invalid company role. Must be: OWNER, PM, BILLING, or MEMBER"
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
