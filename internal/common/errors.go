package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict")
	ErrForeignKey     = errors.New("referenced resource does not exist")
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation failed")
)

// UniqueViolationError reports which column set conflicted, so callers can
// tell a duplicate email apart from a duplicate playlist name.
type UniqueViolationError struct {
	Constraint string
	Fields     []string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique constraint violation on (%s)", strings.Join(e.Fields, ", "))
}

func (e *UniqueViolationError) Unwrap() error { return ErrConflict }

// ForeignKeyViolationError reports a write that referenced a missing parent.
type ForeignKeyViolationError struct {
	Constraint string
}

func (e *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("foreign key violation on constraint %s", e.Constraint)
}

func (e *ForeignKeyViolationError) Unwrap() error { return ErrForeignKey }

// Column sets behind the named unique constraints in the schema DDL.
var uniqueConstraintFields = map[string][]string{
	"users_email_key":                       {"email"},
	"problems_slug_key":                     {"slug"},
	"problem_solved_user_id_problem_id_key": {"user_id", "problem_id"},
	"playlists_name_user_id_key":            {"name", "user_id"},
	"problems_in_playlists_playlist_id_problem_id_key": {"playlist_id", "problem_id"},
}

// TranslateDBError maps Postgres constraint failures onto domain errors.
// Anything it does not recognize passes through untouched.
func TranslateDBError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		fields, ok := uniqueConstraintFields[pgErr.ConstraintName]
		if !ok {
			fields = []string{pgErr.ConstraintName}
		}
		return &UniqueViolationError{Constraint: pgErr.ConstraintName, Fields: fields}
	case "23503": // foreign_key_violation
		return &ForeignKeyViolationError{Constraint: pgErr.ConstraintName}
	}
	return err
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) || errors.Is(err, ErrForeignKey) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
