// Package pgerr maps postgres driver errors onto the errs taxonomy.
package pgerr

import (
	"errors"

	"logistics/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// UniqueViolation returns the violated constraint name when err is a unique
// violation.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}

// Translate converts unique violations into ObjectAlreadyExistsError and
// missing rows into ObjectNotFoundError. Other errors pass through.
func Translate(err error, paramName string, id any) error {
	if err == nil {
		return nil
	}
	if _, ok := UniqueViolation(err); ok {
		return errs.NewObjectAlreadyExistsErrorWithCause(paramName, id, err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(paramName, id, err)
	}
	return err
}
