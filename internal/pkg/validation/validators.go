package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// Registration identifiers are alphanumeric roll numbers, e.g. 21BD1A0501.
	regdIDPattern = regexp.MustCompile(`^[0-9A-Za-z]{6,15}$`)

	// Branch codes are short alphabetic identifiers, e.g. CSE, ECE.
	branchPattern = regexp.MustCompile(`^[A-Za-z]{2,10}$`)
)

// RegisterCustomValidators attaches placement-specific rules to gin's
// binding engine. Call once at startup before routes are served.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("regdid", func(fl validator.FieldLevel) bool {
		return regdIDPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("branchcode", func(fl validator.FieldLevel) bool {
		return branchPattern.MatchString(fl.Field().String())
	})
}
