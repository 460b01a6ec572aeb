package database

import (
	"database/sql"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"versekeeper/internal/database/audit"
	"versekeeper/internal/database/dberr"
	"versekeeper/internal/database/users"
	"versekeeper/internal/database/verses"
	"versekeeper/internal/entities"
)

// Database is the single entry point for persistence. It owns the one
// storage handle per process; consumers receive it by reference from the
// entrypoint instead of reaching into package-level state.
type Database struct {
	DB *gorm.DB

	Users  *users.Repository
	Verses *verses.Repository
	Audit  *audit.Repository
}

// New opens (or creates) the SQLite file at dbPath, brings the schema up to
// date and wires the repositories. Foreign keys and WAL are enabled per
// connection through the DSN so every pooled connection gets them.
func New(dbPath string) (*Database, error) {
	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %v: %w", dbPath, err, dberr.ErrStorageUnavailable)
	}

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}

	database := &Database{
		DB:     db,
		Users:  users.NewRepository(db),
		Verses: verses.NewRepository(db),
		Audit:  audit.NewRepository(db),
	}

	log.Printf("Database initialized at %s", dbPath)
	return database, nil
}

// SQLDB exposes the underlying *sql.DB, needed by the session store.
func (d *Database) SQLDB() (*sql.DB, error) {
	return d.DB.DB()
}

// Close releases the storage handle.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ResetAll wipes verses and users in one transaction, children first so the
// foreign-key constraint is never violated mid-way. Debug/reset flows only.
func (d *Database) ResetAll() error {
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM verses").Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM users").Error
	})
	if err != nil {
		return dberr.Wrap("reset all", err)
	}
	return nil
}

// --- Facade methods ---
//
// The methods below expose both repositories through the one object the rest
// of the application holds. New code may also use d.Users / d.Verses
// directly; the facade keeps the call sites that only need one dependency
// simple.

// CreateUser inserts a new user.
func (d *Database) CreateUser(params users.CreateParams) (*entities.User, error) {
	return d.Users.Create(params)
}

// GetUserByPhone looks a user up by phone number.
func (d *Database) GetUserByPhone(phone string) (*entities.User, error) {
	return d.Users.GetByPhone(phone)
}

// GetUserByID looks a user up by id.
func (d *Database) GetUserByID(id string) (*entities.User, error) {
	return d.Users.GetByID(id)
}

// UpdateUser applies a partial update to a user.
func (d *Database) UpdateUser(id string, patch entities.UserPatch) (*entities.User, error) {
	return d.Users.Update(id, patch)
}

// ListUsers returns every user, newest first.
func (d *Database) ListUsers() ([]entities.User, error) {
	return d.Users.ListAll()
}

// AddVerse inserts a new verse.
func (d *Database) AddVerse(params verses.CreateParams) (*entities.Verse, error) {
	return d.Verses.Create(params)
}

// GetVerse looks a verse up by id.
func (d *Database) GetVerse(id string) (*entities.Verse, error) {
	return d.Verses.GetByID(id)
}

// ListVersesByUser returns the user's verses, newest first.
func (d *Database) ListVersesByUser(userID string) ([]entities.Verse, error) {
	return d.Verses.ListByUser(userID)
}

// UpdateVerse applies a partial update to a verse.
func (d *Database) UpdateVerse(id string, patch entities.VersePatch) (*entities.Verse, error) {
	return d.Verses.Update(id, patch)
}

// DeleteVerse removes a verse; missing ids are a no-op.
func (d *Database) DeleteVerse(id string) error {
	return d.Verses.Delete(id)
}

// ListAllVerses returns every verse across users. Debug use only.
func (d *Database) ListAllVerses() ([]entities.Verse, error) {
	return d.Verses.ListAll()
}
