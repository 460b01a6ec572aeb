package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"versekeeper/internal/database/dberr"
)

// Column lists for the two core tables. The camelCase names are kept from
// the database files written by the original mobile client, so an existing
// file keeps working when pointed at this server.
const (
	usersColumns = `
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL UNIQUE,
		denomination TEXT,
		preferredTranslation TEXT NOT NULL DEFAULT 'NIV',
		createdAt TEXT NOT NULL`

	versesColumns = `
		id TEXT PRIMARY KEY,
		book TEXT NOT NULL,
		chapter INTEGER NOT NULL,
		verse INTEGER NOT NULL,
		content TEXT NOT NULL,
		reference TEXT NOT NULL,
		translation TEXT NOT NULL,
		userId TEXT NOT NULL REFERENCES users (id),
		notes TEXT,
		tags TEXT NOT NULL DEFAULT '[]',
		createdAt TEXT NOT NULL,
		updatedAt TEXT NOT NULL`

	auditColumns = `
		id TEXT PRIMARY KEY,
		userId TEXT,
		eventType TEXT NOT NULL,
		action TEXT NOT NULL,
		description TEXT,
		entityType TEXT,
		entityId TEXT,
		metadata TEXT,
		ipAddress TEXT,
		userAgent TEXT,
		status TEXT NOT NULL,
		errorMsg TEXT,
		createdAt TEXT NOT NULL`
)

// migration is one ordered schema step. Every step must be idempotent:
// databases created by the mobile client report user_version 0 even though
// the core tables already exist, so each step re-checks the live schema
// before touching it.
type migration struct {
	version int
	name    string
	apply   func(tx *gorm.DB) error
}

var migrations = []migration{
	{1, "create users and verses tables", createCoreTables},
	{2, "drop legacy users.email column", dropLegacyEmailColumn},
	{3, "create audit_events table", createAuditTable},
}

// EnsureSchema brings the database file up to the current schema shape.
//
// The initial table creation (version 1) must succeed. Later steps are
// deliberately lenient: a failure is logged and wrapped as
// dberr.ErrMigrationFailed, and the process keeps operating against the old
// shape. The step is retried on the next start because user_version only
// advances on success.
func EnsureSchema(db *gorm.DB) error {
	current, err := schemaVersion(db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.apply(tx); err != nil {
				return err
			}
			return tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)).Error
		})
		if err != nil {
			wrapped := fmt.Errorf("schema migration %d (%s): %v: %w", m.version, m.name, err, dberr.ErrMigrationFailed)
			if m.version == 1 {
				return wrapped
			}
			log.Printf("WARNING: %v; continuing with previous schema", wrapped)
			return nil
		}

		log.Printf("Applied schema migration %d: %s", m.version, m.name)
		current = m.version
	}

	return nil
}

func schemaVersion(db *gorm.DB) (int, error) {
	var version int
	err := db.Raw("PRAGMA user_version").Scan(&version).Error
	return version, err
}

func createCoreTables(tx *gorm.DB) error {
	if err := tx.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS users (%s)", usersColumns)).Error; err != nil {
		return err
	}
	return tx.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS verses (%s)", versesColumns)).Error
}

// dropLegacyEmailColumn removes the users.email column left behind by the
// abandoned cloud-sync experiment. SQLite cannot drop a column in place on
// older versions, so the table is rebuilt: create the new shape, copy the
// surviving columns, drop the old table and rename the new one into place.
// The enclosing transaction makes the rebuild all-or-nothing.
func dropLegacyEmailColumn(tx *gorm.DB) error {
	hasEmail, err := tableHasColumn(tx, "users", "email")
	if err != nil {
		return err
	}
	if !hasEmail {
		return nil
	}

	steps := []string{
		fmt.Sprintf("CREATE TABLE users_new (%s)", usersColumns),
		`INSERT INTO users_new (id, name, phone, denomination, preferredTranslation, createdAt)
			SELECT id, name, phone, denomination, preferredTranslation, createdAt FROM users`,
		"DROP TABLE users",
		"ALTER TABLE users_new RENAME TO users",
	}
	for _, stmt := range steps {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func createAuditTable(tx *gorm.DB) error {
	return tx.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS audit_events (%s)", auditColumns)).Error
}

func tableHasColumn(tx *gorm.DB, table, column string) (bool, error) {
	var columns []struct {
		Name string `gorm:"column:name"`
	}
	if err := tx.Raw(fmt.Sprintf("PRAGMA table_info(%s)", table)).Scan(&columns).Error; err != nil {
		return false, err
	}
	for _, c := range columns {
		if c.Name == column {
			return true, nil
		}
	}
	return false, nil
}
