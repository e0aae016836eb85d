package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateDBErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	err := TranslateDBError(pgErr)

	var uniqueErr *UniqueViolationError
	if !errors.As(err, &uniqueErr) {
		t.Fatalf("expected UniqueViolationError, got %T: %v", err, err)
	}
	if len(uniqueErr.Fields) != 1 || uniqueErr.Fields[0] != "email" {
		t.Errorf("expected fields [email], got %v", uniqueErr.Fields)
	}
	if !errors.Is(err, ErrConflict) {
		t.Error("unique violation should unwrap to ErrConflict")
	}
}

func TestTranslateDBErrorCompoundConstraints(t *testing.T) {
	cases := []struct {
		constraint string
		fields     []string
	}{
		{"problem_solved_user_id_problem_id_key", []string{"user_id", "problem_id"}},
		{"playlists_name_user_id_key", []string{"name", "user_id"}},
		{"problems_in_playlists_playlist_id_problem_id_key", []string{"playlist_id", "problem_id"}},
	}
	for _, tc := range cases {
		err := TranslateDBError(&pgconn.PgError{Code: "23505", ConstraintName: tc.constraint})
		var uniqueErr *UniqueViolationError
		if !errors.As(err, &uniqueErr) {
			t.Fatalf("%s: expected UniqueViolationError, got %v", tc.constraint, err)
		}
		if len(uniqueErr.Fields) != len(tc.fields) {
			t.Fatalf("%s: expected %v, got %v", tc.constraint, tc.fields, uniqueErr.Fields)
		}
		for i := range tc.fields {
			if uniqueErr.Fields[i] != tc.fields[i] {
				t.Errorf("%s: expected %v, got %v", tc.constraint, tc.fields, uniqueErr.Fields)
			}
		}
	}
}

func TestTranslateDBErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "submissions_problem_id_fkey"}

	err := TranslateDBError(pgErr)

	var fkErr *ForeignKeyViolationError
	if !errors.As(err, &fkErr) {
		t.Fatalf("expected ForeignKeyViolationError, got %T: %v", err, err)
	}
	if fkErr.Constraint != "submissions_problem_id_fkey" {
		t.Errorf("expected constraint name preserved, got %q", fkErr.Constraint)
	}
	if !errors.Is(err, ErrForeignKey) {
		t.Error("fk violation should unwrap to ErrForeignKey")
	}
}

func TestTranslateDBErrorPassthrough(t *testing.T) {
	plain := errors.New("connection reset")
	if got := TranslateDBError(plain); got != plain {
		t.Errorf("unrelated errors must pass through unmodified, got %v", got)
	}
	if got := TranslateDBError(nil); got != nil {
		t.Errorf("nil must stay nil, got %v", got)
	}
	// Other pg error classes are not ours to rewrite.
	other := &pgconn.PgError{Code: "42P01"}
	if got := TranslateDBError(other); got != error(other) {
		t.Errorf("non-constraint pg errors must pass through, got %v", got)
	}
}

func TestTranslateDBErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("repo op: %w",
		TranslateDBError(&pgconn.PgError{Code: "23505", ConstraintName: "playlists_name_user_id_key"}))
	if !errors.Is(wrapped, ErrConflict) {
		t.Error("wrapped translation should still match ErrConflict")
	}
}

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrValidation, http.StatusBadRequest},
		{&ForeignKeyViolationError{Constraint: "x"}, http.StatusBadRequest},
		{&UniqueViolationError{Fields: []string{"email"}}, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatusFromError(tc.err); got != tc.want {
			t.Errorf("HTTPStatusFromError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
