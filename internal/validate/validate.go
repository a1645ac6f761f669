// Package validate holds the pure validation rules applied before any
// write is attempted. Functions return typed errors from internal/errs
// and have no side effects.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"crm-service/internal/errs"
	"crm-service/internal/models"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Optional leading +, then digits, hyphens and spaces only.
var phoneRe = regexp.MustCompile(`^\+?[0-9\- ]+$`)

// Email fails if email is not a syntactically valid address.
func Email(email string) error {
	if err := v.Var(email, "required,email"); err != nil {
		return errs.NewValidation("email", "Enter a valid email address")
	}
	return nil
}

// Phone accepts an empty phone (the field is optional) and otherwise
// requires the +1234567890 / 123-456-7890 shape.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRe.MatchString(phone) {
		return errs.NewValidation("phone", "Invalid phone format. Use +1234567890 or 123-456-7890")
	}
	return nil
}

// Customer applies all field constraints on a customer and aggregates
// every failing field into one ValidationError.
func Customer(c *models.Customer) error {
	ve := &errs.ValidationError{}
	collectStructErrors(ve, v.Struct(c))
	if err := Phone(c.Phone); err != nil {
		ve.Add("phone", "Invalid phone format. Use +1234567890 or 123-456-7890")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Product applies all field constraints on a product, including the
// non-negative price rule the struct tags cannot express.
func Product(p *models.Product) error {
	ve := &errs.ValidationError{}
	collectStructErrors(ve, v.Struct(p))
	if p.Price.IsNegative() {
		ve.Add("price", "Ensure this value is greater than or equal to 0")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func collectStructErrors(ve *errs.ValidationError, err error) {
	if err == nil {
		return
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		ve.Add("", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		ve.Add(strings.ToLower(fe.Field()), messageForTag(fe))
	}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("Invalid value for %s", fe.Field())
	}
}
