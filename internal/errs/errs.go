// Package errs defines the structured failure returned to API clients.
//
// Every error that leaves a service is an *HTTPError carrying:
//   - a machine-readable Kind (validation_error, foreign_key_error, ...)
//   - a stable Code (e.g. "RATING_INVALID", "PLACE_NOT_FOUND")
//   - a human-readable Message that never contains raw driver text
//   - optional field-level errors for form validation
package errs
