package errors

// Postgres-specific helpers for mapping pgx errors to project ErrorCode and retry semantics

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Common SQLSTATE codes we care about
const (
	pgErrUniqueViolation     = "23505"
	pgErrNotNullViolation    = "23502"
	pgErrCheckViolation      = "23514"
	pgErrSerializationFail   = "40001"
	pgErrDeadlockDetected    = "40P01"
	pgErrLockNotAvailable    = "55P03"
	pgErrCannotConnectNow    = "57P03" // i.e. startup in progress
	pgErrAdminShutdown       = "57P01"
	pgErrConnectionFailure   = "08006"
	pgErrConnectionException = "08000"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError.
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports whether the error is a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgErrUniqueViolation) }

// IsNotNullViolation reports whether the error is a not-null constraint violation
func IsNotNullViolation(err error) bool { return IsSQLState(err, pgErrNotNullViolation) }

// IsCheckViolation reports whether the error is a check constraint violation
func IsCheckViolation(err error) bool { return IsSQLState(err, pgErrCheckViolation) }

// IsRetryablePg reports whether the error class is worth retrying (serialization,
// deadlock, lock contention, or connection-level trouble)
func IsRetryablePg(err error) bool {
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return false
	}
	switch pgErr.Code {
	case pgErrSerializationFail, pgErrDeadlockDetected, pgErrLockNotAvailable,
		pgErrCannotConnectNow, pgErrAdminShutdown, pgErrConnectionFailure, pgErrConnectionException:
		return true
	}
	return strings.HasPrefix(pgErr.Code, "08") // connection exception class
}

// MapPg converts a pg error into a project *Error with a best-effort code
func MapPg(err error) error {
	if err == nil {
		return nil
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, "database error")
	}
	switch {
	case pgErr.Code == pgErrUniqueViolation:
		return Wrapf(err, ErrorCodeInvalidArgument, "duplicate key %s", pgErr.ConstraintName)
	case IsRetryablePg(err):
		return Wrap(err, ErrorCodeUnavailable, "transient database error")
	default:
		return Wrap(err, ErrorCodeDB, "database error")
	}
}
