package helper

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	codeRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]*$`)

	getValidator = sync.OnceValue(func() *validator.Validate {
		validate := validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("code", func(fieldLevel validator.FieldLevel) bool {
			return codeRegex.MatchString(fieldLevel.Field().String())
		})
		return validate
	})
)

// Problems validates request against its struct tags and returns one
// readable message per failing field, in declaration order.
func Problems(request any) []string {
	err := getValidator().Struct(request)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}
	problems := make([]string, len(validationErrors))
	for i, fieldError := range validationErrors {
		problems[i] = describe(fieldError)
	}
	return problems
}

func describe(fieldError validator.FieldError) string {
	field := fieldError.Field()
	isString := fieldError.Kind() == reflect.String
	switch fieldError.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if isString {
			if fieldError.Param() == "1" {
				return field + " must not be empty"
			}
			return fmt.Sprintf("%s must be at least %s characters", field, fieldError.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fieldError.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fieldError.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fieldError.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fieldError.Param())
	case "code":
		return field + " may only contain letters, digits, dash and underscore"
	}
	return field + " is invalid"
}
