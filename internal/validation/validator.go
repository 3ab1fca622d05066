package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"
)

// phoneRe accepts international numbers with optional separators,
// e.g. "+7 999 111-11-11" or "+79991111111".
var phoneRe = regexp.MustCompile(`^\+?\d[\d\s\-()]{9,17}$`)

// New returns a configured validator with the custom phone rule registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	_ = v.RegisterValidation("phone", func(fl validatorv10.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})

	return v
}
