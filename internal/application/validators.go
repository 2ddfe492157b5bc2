package application

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Package-level validator instance for configuration validation, configured
// with the custom rules below.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration fails only for an empty tag name, which would be a
	// programming error in this package.
	if err := v.RegisterValidation("regexppattern", validateRegexpPattern); err != nil {
		panic(err)
	}
	return v
}

// validateRegexpPattern accepts fields whose value compiles as a Go regular
// expression. Empty values pass; pair the tag with omitempty where an empty
// pattern is meaningful.
func validateRegexpPattern(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}
