package models

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validation runs explicitly before any mutating operation instead of inside
// storage hooks, so the rules hold no matter which driver is underneath.
var validate = validator.New()

var phoneRe = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)

func init() {
	// Same character set the shop accepted historically: digits, spaces,
	// dashes, plus, parentheses.
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
}

// Validate checks required fields and the selling >= purchase price rule.
func (m *Mobile) Validate() error {
	return friendly(validate.Struct(m))
}

// Validate checks required fields, non-negative stock and the price rule.
func (a *Accessory) Validate() error {
	return friendly(validate.Struct(a))
}

// Validate checks name, phone format and optional email.
func (c *Customer) Validate() error {
	return friendly(validate.Struct(c))
}

// ValidPaymentMethod reports whether method is one of the accepted values.
func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// friendly turns the first validator error into a message the UI can show as-is.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "gtefield":
		return fmt.Errorf("selling price must be greater than or equal to purchase price")
	case "gte":
		return fmt.Errorf("%s must not be negative", fe.Field())
	case "oneof":
		return fmt.Errorf("invalid value for %s", fe.Field())
	case "email":
		return fmt.Errorf("invalid email address")
	case "phone":
		return fmt.Errorf("phone may only contain digits, spaces, dashes, plus and parentheses")
	default:
		return fmt.Errorf("invalid value for %s", fe.Field())
	}
}
