package util_test

import (
	"errors"
	"net/http"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/spec-kit/airport-dashboard/pkg/util"
)

func TestErrorKindStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   apperrors.ErrorKind
		status int
	}{
		{"validation", apperrors.NewValidationError("bad input"), apperrors.KindValidation, http.StatusBadRequest},
		{"unauthorized", apperrors.NewUnauthorized("who are you"), apperrors.KindUnauthorized, http.StatusUnauthorized},
		{"forbidden", apperrors.NewForbidden("not yours"), apperrors.KindForbidden, http.StatusForbidden},
		{"not found", apperrors.NewNotFound("user"), apperrors.KindNotFound, http.StatusNotFound},
		{"storage", apperrors.NewStorageError(errors.New("conn reset")), apperrors.KindStorage, http.StatusInternalServerError},
		{"internal", apperrors.NewInternalError(errors.New("boom")), apperrors.KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			de := apperrors.ToDomainError(tt.err)
			c.Assert(de, qt.IsNotNil)
			c.Assert(de.Kind, qt.Equals, tt.kind)
			c.Assert(de.HTTPStatus, qt.Equals, tt.status)
		})
	}
}

func TestToDomainError(t *testing.T) {
	c := qt.New(t)

	c.Assert(apperrors.ToDomainError(nil), qt.IsNil)

	// Plain errors default to internal.
	de := apperrors.ToDomainError(errors.New("boom"))
	c.Assert(de.Kind, qt.Equals, apperrors.KindInternal)
	c.Assert(de.HTTPStatus, qt.Equals, http.StatusInternalServerError)

	// Missing rows map to not found.
	de = apperrors.ToDomainError(pgx.ErrNoRows)
	c.Assert(de.Kind, qt.Equals, apperrors.KindNotFound)
	c.Assert(de.HTTPStatus, qt.Equals, http.StatusNotFound)

	// A wrapped DomainError keeps its kind.
	wrapped := apperrors.NewForbidden("nope")
	de = apperrors.ToDomainError(wrapped)
	c.Assert(de.Kind, qt.Equals, apperrors.KindForbidden)
}

func TestNotFoundMessage(t *testing.T) {
	c := qt.New(t)
	c.Assert(apperrors.NewNotFound("notification"), qt.ErrorMatches, "notification not found")
}

func TestErrorMessageOmitsWrappedDetail(t *testing.T) {
	c := qt.New(t)

	err := apperrors.NewStorageError(errors.New("password=hunter2 rejected"))
	de := apperrors.ToDomainError(err)
	c.Assert(de.Message, qt.Equals, "storage failure, please try again")
}
