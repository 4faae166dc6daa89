package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/deppfellow/placerate/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TablePrefix marks the table a "no rows" error came from. Repositories wrap
// pgx.ErrNoRows as "table:<name>:" so HandleError can name the entity.
const TablePrefix = "table:"

// ErrCode reports the mapped Code for a given error, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a pgconn.PgError into our Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates "<DOMAIN>_<ACTION>" codes, e.g.
// ratings + ForeignKeyViolation on place_id => PLACE_NOT_FOUND.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Naive singularization: "USERS" -> "USER".
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// foreignKeyDomain picks the referenced table for FK errors. The column
// ("place_id") names the missing entity better than the referencing table
// ("ratings").
func foreignKeyDomain(sqlErr *Error) string {
	if col := strings.ToLower(sqlErr.ColumnName); strings.HasSuffix(col, "_id") {
		return strings.TrimSuffix(col, "_id")
	}
	if col := columnFromForeignKeyConstraint(sqlErr.ConstraintName); col != "" {
		return col
	}
	return sqlErr.TableName
}

var fkeyRe = regexp.MustCompile(`^[a-z]+_([a-z]+)_id_fkey$`)

// columnFromForeignKeyConstraint reads the default PostgreSQL FK name,
// "ratings_place_id_fkey" -> "place". PostgreSQL does not report the column
// for FK violations, so this is the usual path.
func columnFromForeignKeyConstraint(constraintName string) string {
	m := fkeyRe.FindStringSubmatch(constraintName)
	if len(m) > 1 {
		return m[1]
	}
	return ""
}

// formatUserFriendlyMessage produces an end-user-facing message for sqlErr.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", humanizeText(foreignKeyDomain(sqlErr)))

	case UniqueViolation:
		// "identifier" is replaced later if the column can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name: "user_id" -> "User", "places" -> "Place".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from a unique constraint
// name: "unique_users_email" or "users_email_key" -> "email".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyRe.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// isConnectivityError reports dial failures, timeouts and broken connections.
func isConnectivityError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return strings.Contains(err.Error(), "closed pool")
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - pgconn.PgError: mapped by SQLSTATE (FK, unique, not null, check, connection class)
//   - pgx.ErrNoRows / sql.ErrNoRows: not found, entity named from the "table:" prefix
//   - context.Canceled: the client went away, reported as 499
//   - dial / timeout / network errors: connectivity
//   - anything else: generic database error
//
// Repositories call this right after a failed store call.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return errs.NewClientClosedError()
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		if sqlErr.Code.IsConnectivity() {
			return errs.NewServiceUnavailableError()
		}

		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			errorCode := generateErrorCode(foreignKeyDomain(sqlErr), ForeignKeyViolation)
			return errs.NewForeignKeyError(userMessage, &errorCode)

		case UniqueViolation:
			errorCode := generateErrorCode(sqlErr.TableName, UniqueViolation)
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewConflictError(userMessage, &errorCode)

		case NotNullViolation:
			errorCode := generateErrorCode(sqlErr.TableName, NotNullViolation)
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation:
			errorCode := generateErrorCode(sqlErr.TableName, CheckViolation)
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			// Unknown server errors never leak their text to clients.
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		errMsg := err.Error()
		if strings.Contains(errMsg, TablePrefix) {
			table := strings.Split(strings.Split(errMsg, TablePrefix)[1], ":")[0]
			entityName := getEntityName(table, "")
			code := generateErrorCode(table, ForeignKeyViolation)
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName), true, &code)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	if isConnectivityError(err) {
		return errs.NewServiceUnavailableError()
	}

	return errs.NewInternalServerError()
}
