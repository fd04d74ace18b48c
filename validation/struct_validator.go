// Package validation checks request payloads against struct tags and turns
// failures into the service's error type, one entry per failing field.
package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/secureapi/errors"
)

// FieldError names one failing field, using its json tag name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var defaultValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json names so error details match the wire
	// format, not the Go struct.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return snakeCase(fld.Name)
		}
		return name
	})

	return v
})

// Validate checks s against its `validate` tags. On failure it returns an
// AppError whose details carry a "fields" list covering every violation.
func Validate(s any) error {
	err := defaultValidator().Struct(s)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !stderrors.As(err, &violations) {
		return errors.Validation("validation failed")
	}

	fields := make([]FieldError, 0, len(violations))
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		fe := FieldError{Field: snakeCase(v.Field()), Message: describe(v)}
		fields = append(fields, fe)
		parts = append(parts, fe.Field+": "+fe.Message)
	}

	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", fields)
}

// describe renders a failing tag as a short client-facing message.
func describe(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + v.Param() + " characters"
	case "max":
		return "must be at most " + v.Param() + " characters"
	case "gt":
		return "must be greater than " + v.Param()
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + v.Param()
	default:
		return "is invalid"
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
