package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator plugs go-playground/validator into echo.Echo.Validator.
type requestValidator struct {
	validate *validator.Validate
}

// ValidationError lists every rule a request broke, in field order.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Field names in messages come from the json or query tag, so they match
// what the client sent.
func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(wireName)
	// max counts runes; bcrypt's input limit is in bytes.
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return &requestValidator{validate: v}
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	out := &ValidationError{Problems: make([]string, 0, len(fields))}
	for _, fe := range fields {
		out.Problems = append(out.Problems, describe(fe))
	}
	return out
}

// Rule messages; %[1]s is the field, %[2]s the rule parameter.
var ruleMessages = map[string]string{
	"required": "%[1]s is required",
	"email":    "%[1]s must be a valid email",
	"gt":       "%[1]s must be greater than %[2]s",
	"gte":      "%[1]s must be at least %[2]s",
	"lte":      "%[1]s must be at most %[2]s",
	"min":      "%[1]s must be at least %[2]s characters",
	"max":      "%[1]s must be at most %[2]s characters",
	"maxbytes": "%[1]s must be at most %[2]s bytes",
	"oneof":    "%[1]s must be one of: %[2]s",
}

func describe(fe validator.FieldError) string {
	if format, ok := ruleMessages[fe.Tag()]; ok {
		return fmt.Sprintf(format, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
}
