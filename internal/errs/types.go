package errs

import (
	"strings"
)

// Kind is the error taxonomy shared by every engine operation.
type Kind string

const (
	// KindValidation is malformed, missing or out-of-range input. It is always
	// detected before the store is touched.
	KindValidation Kind = "validation_error"

	// KindForeignKey is a reference to a user or place that does not exist.
	KindForeignKey Kind = "foreign_key_error"

	// KindNotFound is a lookup by id that matched nothing.
	KindNotFound Kind = "not_found"

	// KindConflict is a uniqueness violation the client can fix (duplicate e-mail).
	KindConflict Kind = "conflict"

	// KindUnauthorized is a failed credential comparison.
	KindUnauthorized Kind = "unauthorized"

	// KindConnectivity means the store could not be reached.
	KindConnectivity Kind = "connectivity_error"

	// KindCanceled is a request the client abandoned before the store answered.
	KindCanceled Kind = "request_canceled"

	// KindDatabase is any other store-reported failure.
	KindDatabase Kind = "database_error"
)

// FieldError represents a field-level validation error.
//
//	{ "field": "stars", "error": "must not exceed 5" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the main error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "USER_NOT_FOUND").
//   - Kind: taxonomy bucket, see the Kind constants. Empty for transport
//     errors such as 405 or 429.
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show to end users verbatim.
//   - Errors: per-field errors (validation).
//   - Action: client instruction (optional).
type HTTPError struct {
	Code     string `json:"code"`
	Kind     Kind   `json:"kind,omitempty"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`

	Action *Action `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. It does not compare fields;
// use KindOf when the bucket matters.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Kind:     e.Kind,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
