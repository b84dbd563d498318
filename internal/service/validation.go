package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NIC: exactly 9 digits followed by V/v/X/x, or exactly 12 digits.
// Mobile: exactly 10 digits beginning with 07.
var (
	nicPattern    = regexp.MustCompile(`^([0-9]{9}[VvXx]|[0-9]{12})$`)
	mobilePattern = regexp.MustCompile(`^07[0-9]{8}$`)
)

// RegisterCustomValidations installs the domain-specific field rules on the
// provided validator. Call once during wiring.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("nic", func(fl validator.FieldLevel) bool {
		return nicPattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("lkmobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
}

// validationMessage flattens validator errors into a message naming every
// offending field, so callers can correct the payload in one round trip.
func validationMessage(err error, fallback string) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fallback
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "nic":
			fields = append(fields, fe.Field()+" must be 9 digits followed by V/X or 12 digits")
		case "lkmobile":
			fields = append(fields, fe.Field()+" must be 10 digits starting with 07")
		case "required":
			fields = append(fields, fe.Field()+" is required")
		case "email":
			fields = append(fields, fe.Field()+" must be a valid email address")
		default:
			fields = append(fields, fe.Field()+" is invalid")
		}
	}
	return fallback + ": " + strings.Join(fields, "; ")
}
