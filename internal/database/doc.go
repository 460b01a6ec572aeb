// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, facade, reset
//	├── schema.go        # Versioned schema migrations
//	├── dberr/           # Storage error taxonomy and driver error mapping
//	├── users/           # User account CRUD
//	├── verses/          # Verse library CRUD
//	└── audit/           # Activity log
//
// Each sub-package provides a Repository type wrapping the shared *gorm.DB:
//
//	db, err := database.New("./bible-app.db")
//	user, err := db.Users.GetByPhone(phone)
//	list, err := db.Verses.ListByUser(user.ID)
//
// The Database struct also forwards the repository operations directly
// (CreateUser, AddVerse, ...) so callers that want the single facade from
// the mobile client's API keep one dependency.
//
// # Schema
//
// The schema is hand-written DDL, not AutoMigrate: the on-disk shape has to
// stay byte-compatible with database files created by the original mobile
// client (camelCase column names, ISO-8601 TEXT timestamps, TEXT ids).
// schema.go holds the ordered migration steps; each step is idempotent and
// the current version is tracked in PRAGMA user_version.
//
// # Errors
//
// Repositories never return raw driver errors. Everything is classified by
// dberr.Wrap into ErrNotFound, ErrConstraintViolation, ErrStorageUnavailable
// or ErrMigrationFailed, with the driver detail preserved in the chain.
package database
