package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/localnerve/foodtrack/internal/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Infinities and NaN pass gte and cannot be serialized
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		switch field.Kind() {
		case reflect.Float32, reflect.Float64:
			return types.IsFinite(field.Float())
		}
		return true
	})
	return v
}

// validateInput runs the struct tags of input and converts the first failure
// into a Validation error.
func validateInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return types.Validation("invalid input: %v", err)
	}

	fe := fieldErrs[0]
	return types.Validation("%s", describe(fe))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "alphanum":
		return fmt.Sprintf("%s contains non alphanumeric characters - not allowed", field)
	case "email":
		return fmt.Sprintf("%s does not appear to be valid", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "finite":
		return fmt.Sprintf("%s must be a finite number", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed the %s check", field, fe.Tag())
}
