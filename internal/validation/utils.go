package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/placerate/internal/errs"
)

// CustomValidationError is a rule that cannot be expressed in a tag.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate fills payload from the path, query string and body, then
// validates it. payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindError(err error) *errs.HTTPError {
	message := "Invalid request"

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		}
	}
	return errs.NewBadRequestError(message, false, nil, nil, nil)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed: " + err.Error(), nil
	}

	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: e.Field(),
			Error: tagMessage(e),
		})
	}

	return "Validation failed", fieldErrors
}

func tagMessage(e validator.FieldError) string {
	isString := e.Kind() == reflect.String

	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	}

	if e.Param() != "" {
		return fmt.Sprintf("%s: %s:%s", e.Field(), e.Tag(), e.Param())
	}
	return fmt.Sprintf("%s: %s", e.Field(), e.Tag())
}
