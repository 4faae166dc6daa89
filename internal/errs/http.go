package errs

import (
	"errors"
	"net/http"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// override signals whether the message may be shown to the client as is.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusUnauthorized),
		Kind:     KindUnauthorized,
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewBadRequestError creates a 400 validation failure.
//
// code overrides the default "BAD_REQUEST" when not nil; errors carries
// per-field details for form inputs.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Kind:     KindValidation,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewForeignKeyError creates a 400 error for a reference to a missing row.
func NewForeignKeyError(message string, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Kind:     KindForeignKey,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: true,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Kind:     KindNotFound,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewConflictError creates a 409 Conflict HTTPError.
func NewConflictError(message string, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusConflict)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Kind:     KindConflict,
		Message:  message,
		Status:   http.StatusConflict,
		Override: true,
	}
}

// NewServiceUnavailableError creates a 503 for an unreachable store.
//
// The message is fixed; the underlying network error is only logged.
func NewServiceUnavailableError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusServiceUnavailable),
		Kind:     KindConnectivity,
		Message:  "The data store is currently unreachable",
		Status:   http.StatusServiceUnavailable,
		Override: false,
	}
}

// StatusClientClosedRequest is the non-standard 499 used when the client
// hung up before the response was ready.
const StatusClientClosedRequest = 499

// NewClientClosedError reports a request canceled by the client. Nobody
// reads the body; it exists so logs and metrics do not count a store failure.
func NewClientClosedError() *HTTPError {
	return &HTTPError{
		Code:     "CLIENT_CLOSED_REQUEST",
		Kind:     KindCanceled,
		Message:  "Request canceled by the client",
		Status:   StatusClientClosedRequest,
		Override: false,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the real error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Kind:     KindDatabase,
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}

// InvalidField builds a 400 with a single field error, used by services that
// re-check ranges before touching the store.
func InvalidField(field, message string) *HTTPError {
	return NewBadRequestError("Validation failed", true, nil, []FieldError{
		{Field: field, Error: message},
	}, nil)
}

// KindOf returns the Kind of the first *HTTPError in err's chain, or
// KindDatabase when err carries none.
func KindOf(err error) Kind {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Kind
	}
	return KindDatabase
}
