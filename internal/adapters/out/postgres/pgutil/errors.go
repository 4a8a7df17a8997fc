// Package pgutil holds the column types and error translation shared by the
// PostgreSQL repositories.
package pgutil

import (
	"errors"

	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint failure,
// either raw from pgx or already translated by gorm.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ConstraintName returns the name of the violated constraint, if pgx reported one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// ViolatesUnique reports whether err is a unique violation of the named
// constraint or index.
func ViolatesUnique(err error, constraint string) bool {
	return IsUniqueViolation(err) && ConstraintName(err) == constraint
}

// OnCreate translates an insert failure.
func OnCreate(err error, paramName string, key any) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errs.NewDuplicateCreationError(paramName, key, err)
	}
	return err
}

// OnGet translates a single-row read failure.
func OnGet(err error, paramName string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(paramName, id)
	}
	return err
}

// OnUpdate checks a version-conditional update. No affected row means the
// version moved since the aggregate was read. A unique violation on update
// means a concurrent writer claimed the same slot; both are replayable.
func OnUpdate(result *gorm.DB, paramName string, id any) error {
	if result.Error != nil {
		if IsUniqueViolation(result.Error) {
			return errors.Join(errs.NewConcurrentModificationError(paramName, id), result.Error)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError(paramName, id)
	}
	return nil
}
