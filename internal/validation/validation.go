// Package validation binds request data and validates it.
//
// Rules live in `validate` struct tags checked by go-playground/validator.
// Failures are turned into a 400 *errs.HTTPError with one entry per field,
// named after the field's json, param or query tag.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return v
}

// fieldName reports a struct field by the name the client used for it.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "param", "query"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct validates v against its struct tags.
func Struct(v any) error {
	return validate.Struct(v)
}
