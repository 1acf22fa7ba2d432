// Package validation registers fleetgrid's custom binding validators on
// Gin's validator engine. Register must run once before routes are served.
package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// plateRegex accepts registration plates: upper-case letters and digits,
// optionally separated by single spaces or dashes, 2 to 10 characters.
var plateRegex = regexp.MustCompile(`^[A-Z0-9]+(?:[ -][A-Z0-9]+)*$`)

// Register installs the custom validators. Safe to call multiple times.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("plate", validPlate)
}

func validPlate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 2 || len(s) > 10 {
		return false
	}
	return plateRegex.MatchString(s)
}
