package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Every status-guarded UPDATE resolves a zero-row outcome through
// guardFailure: an existing record in the wrong state must surface as an
// invalid-state error, never as a silent success, so re-applying a confirm
// cannot double-apply its side effects (expiry extension, owner activation,
// commission creation).
func TestGuardFailure(t *testing.T) {
	require.ErrorIs(t, guardFailure(true), ErrInvalidState)
	require.ErrorIs(t, guardFailure(false), ErrAccessDenied)
}

func TestTranslateError(t *testing.T) {
	require.NoError(t, translateError(nil, ""))

	// Absent records are conflated with inaccessible ones
	require.ErrorIs(t, translateError(gorm.ErrRecordNotFound, ""), ErrAccessDenied)

	// Unique violations carry the call site's message
	err := translateError(&pgconn.PgError{Code: pgUniqueViolation}, "Username already exists")
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, "Username already exists", conflictErr.Message)

	// Foreign-key and check violations surface as validation errors
	var validationErr *ValidationError
	err = translateError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "fk_venue_district"}, "")
	require.ErrorAs(t, err, &validationErr)

	err = translateError(&pgconn.PgError{Code: pgCheckViolation, ConstraintName: "chk_venues_capacity"}, "")
	require.ErrorAs(t, err, &validationErr)

	// Anything else passes through untouched
	plain := errors.New("connection reset")
	require.Equal(t, plain, translateError(plain, ""))
}
