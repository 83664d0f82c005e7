package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the stores react to
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
	pgInvalidText         = "22P02"
	pgSerialization       = "40001"
	pgDeadlock            = "40P01"
	pgLockNotAvailable    = "55P03"
	pgReadOnly            = "25006"
	pgCannotConnectNow    = "57P03"
)

var codeBySQLState = map[string]ErrorCode{
	pgUniqueViolation:     ErrorCodeDuplicateKey,
	pgForeignKeyViolation: ErrorCodeNotFound,
	pgNotNullViolation:    ErrorCodeValidation,
	pgCheckViolation:      ErrorCodeValidation,
	pgStringTooLong:       ErrorCodeInvalidArgument,
	pgInvalidText:         ErrorCodeInvalidArgument,
	pgSerialization:       ErrorCodeConflict,
	pgDeadlock:            ErrorCodeConflict,
	pgLockNotAvailable:    ErrorCodeUnavailable,
	pgReadOnly:            ErrorCodeUnavailable,
	pgCannotConnectNow:    ErrorCodeUnavailable,
}

// DBErrorCode classifies a postgres error; ok is false when err holds no *pgconn.PgError
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	var pe *pgconn.PgError
	if !stderrs.As(err, &pe) {
		return ErrorCodeUnknown, false
	}
	if c, found := codeBySQLState[pe.Code]; found {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a driver error with its mapped code.
// Errors that already carry a code pass through. The column, or failing that the
// constraint name, becomes the field.
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	code, ok := DBErrorCode(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	out := Wrap(err, code, msg)
	var pe *pgconn.PgError
	stderrs.As(err, &pe)
	switch {
	case strings.TrimSpace(pe.ColumnName) != "":
		out = WithField(out, pe.ColumnName)
	case strings.TrimSpace(pe.ConstraintName) != "":
		out = WithField(out, pe.ConstraintName)
	}
	return out
}

// IsRetryable reports contention errors a caller may retry as is
func IsRetryable(err error) bool {
	var pe *pgconn.PgError
	if !stderrs.As(err, &pe) {
		return false
	}
	switch pe.Code {
	case pgSerialization, pgDeadlock, pgLockNotAvailable:
		return true
	}
	return false
}
