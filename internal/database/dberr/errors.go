// Package dberr defines the storage error taxonomy shared by all
// repositories, and maps driver-level failures onto it.
package dberr

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the requested id has no matching row.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation means a unique or foreign-key constraint was
	// breached (duplicate phone, verse pointing at a missing user).
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStorageUnavailable means the engine call itself failed, e.g. the
	// file could not be opened or an I/O error occurred.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMigrationFailed means a schema migration step did not complete.
	// The previous schema is left untouched.
	ErrMigrationFailed = errors.New("migration failed")
)

// Wrap classifies a driver error into the taxonomy above, keeping the
// original error text in the chain. Errors that fit no category pass
// through wrapped with the operation name only. A nil error stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%s: %v: %w", op, err, ErrConstraintViolation)
		case sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrNotADB, sqlite3.ErrCorrupt, sqlite3.ErrBusy:
			return fmt.Errorf("%s: %v: %w", op, err, ErrStorageUnavailable)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
