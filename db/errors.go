package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error taxonomy surfaced by the query layer. Handlers translate these into
// HTTP statuses; anything else is an upstream persistence error reported as
// an internal error with the storage detail attached.
var (
	// Record absent, or absent for this caller's scope. The two cases are
	// deliberately conflated so unauthorized callers cannot probe existence.
	ErrAccessDenied = errors.New("record not found or not accessible")

	// The record exists but the requested transition is not allowed from its
	// current state (e.g. confirming an already-confirmed payment).
	ErrInvalidState = errors.New("operation not allowed in the current state")
)

// ValidationError: a required field is missing or an input fails a business
// precondition. No mutation has been performed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ConflictError: a uniqueness rule was violated (duplicate username/phone,
// duplicate subscription period, duplicate confirmed booking slot).
type ConflictError struct {
	Message string
	Err     error
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// guardFailure interprets a status-guarded UPDATE that matched no rows. The
// record being absent (or outside the caller's scope) and the record sitting
// in a state the transition is not allowed from are the two possible causes;
// the caller re-checks existence and passes the answer here.
func guardFailure(recordExists bool) error {
	if !recordExists {
		return ErrAccessDenied
	}
	return ErrInvalidState
}

// Postgres error codes worth distinguishing
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Translate a storage error into the taxonomy. The conflictMessage is used
// when the error turns out to be a unique violation, so each call site can
// name which uniqueness rule the caller tripped over.
func translateError(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAccessDenied
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConflictError{Message: conflictMessage, Err: err}
		case pgForeignKeyViolation:
			return &ValidationError{Reason: fmt.Sprintf("invalid reference: %s", pgErr.ConstraintName)}
		case pgCheckViolation:
			return &ValidationError{Reason: fmt.Sprintf("constraint violated: %s", pgErr.ConstraintName)}
		}
	}

	return err
}
