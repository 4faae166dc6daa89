// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes reported by PostgreSQL (through pgx) and
// converts them into the errs taxonomy (e.g., converting a
// "foreign key violation" on ratings.place_id into a foreign_key_error
// that says "The referenced Place does not exist").
package sqlerr

import "fmt"

// Code is a coarse classification of a SQLSTATE.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ConnectionException Code = "connection_exception"
	InsufficientRes     Code = "insufficient_resources"
	AdminShutdown       Code = "admin_shutdown"
	QueryCanceled       Code = "query_canceled"
)

// Severity mirrors the severity field of a PostgreSQL error report.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is the driver-agnostic view of a store failure.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Severity, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a five character SQLSTATE to a Code.
//
// Exact codes are checked first, then the two character class.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "57P01", "57P02", "57P03":
		return AdminShutdown
	case "57014":
		return QueryCanceled
	}

	if len(sqlState) >= 2 {
		switch sqlState[:2] {
		case "08":
			return ConnectionException
		case "53":
			return InsufficientRes
		}
	}

	return Other
}

// MapSeverity maps the severity string reported by the server.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// IsConnectivity reports whether the code means the store is unreachable
// rather than the statement being wrong.
func (c Code) IsConnectivity() bool {
	switch c {
	case ConnectionException, InsufficientRes, AdminShutdown:
		return true
	}
	return false
}
