package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/pixelc/internal/imageio"
	"github.com/idelchi/pixelc/pkg/pixelcipher"
)

// registerRules adds the custom validations with their messages and reports
// fields by their label tag.
func registerRules(v *validator.Validator) error {
	rules := []struct {
		tag     string
		fn      func(validator.FieldLevel) bool
		message string
	}{
		{"exclusive", validateExclusive, "{0} is mutually exclusive"},
		{"format", validateFormat, "{0} must be one of [" + strings.Join(pixelcipher.Formats(), " ") + "]"},
		{"output", validateOutput, "{0} must be one of [" + strings.Join(imageio.OutputFormats(), " ") + "]"},
	}

	for _, rule := range rules {
		if err := v.RegisterValidationAndTranslation(rule.tag, rule.fn, rule.message); err != nil {
			return fmt.Errorf("registering %s validation: %w", rule.tag, err)
		}
	}

	v.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateExclusive checks if two fields are mutually exclusive.
// Returns false if both fields have non-empty values.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && otherField.Kind() == reflect.String {
		return field.String() == "" || otherField.String() == ""
	}

	return true
}

// validateFormat accepts every name pixelcipher.ParseFormat accepts, aliases included.
func validateFormat(fl validator.FieldLevel) bool {
	_, err := pixelcipher.ParseFormat(fl.Field().String())

	return err == nil
}

// validateOutput accepts the lossless output formats, in any case.
func validateOutput(fl validator.FieldLevel) bool {
	return imageio.ValidOutput(fl.Field().String())
}
