package database_test

import (
	"database/sql"
	"os"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versekeeper/internal/database"
	"versekeeper/internal/database/users"
	"versekeeper/internal/database/verses"
)

func testDBPath(t *testing.T) string {
	t.Helper()
	return "./test_db_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
}

func TestNew_CreatesSchema(t *testing.T) {
	dbPath := testDBPath(t)
	defer os.Remove(dbPath)

	db, err := database.New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "verses", "audit_events"} {
		var count int
		err := db.DB.Raw(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&count).Error
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}

	var version int
	require.NoError(t, db.DB.Raw("PRAGMA user_version").Scan(&version).Error)
	assert.Equal(t, 3, version)
}

func TestNew_Idempotent(t *testing.T) {
	dbPath := testDBPath(t)
	defer os.Remove(dbPath)

	db, err := database.New(dbPath)
	require.NoError(t, err)

	_, err = db.Users.Create(users.CreateParams{Name: "Jane", Phone: "+15550001111"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not disturb existing data
	db, err = database.New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	user, err := db.Users.GetByPhone("+15550001111")
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
}

// seedLegacyDatabase builds a database file the way an old client version
// left it: users table with the abandoned email column, schema version 0.
func seedLegacyDatabase(t *testing.T, dbPath string) {
	t.Helper()

	raw, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer raw.Close()

	_, err = raw.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL UNIQUE,
		denomination TEXT,
		preferredTranslation TEXT NOT NULL DEFAULT 'NIV',
		createdAt TEXT NOT NULL,
		email TEXT
	)`)
	require.NoError(t, err)

	_, err = raw.Exec(`INSERT INTO users (id, name, phone, denomination, preferredTranslation, createdAt, email) VALUES
		('u1', 'Jane', '+15550001111', 'Baptist', 'NIV', '2023-05-01T10:00:00.000000000Z', 'jane@example.com'),
		('u2', 'Paul', '+15550002222', NULL, 'ESV', '2023-06-01T10:00:00.000000000Z', NULL)`)
	require.NoError(t, err)
}

func TestEnsureSchema_DropsLegacyEmailColumn(t *testing.T) {
	dbPath := testDBPath(t)
	defer os.Remove(dbPath)

	seedLegacyDatabase(t, dbPath)

	db, err := database.New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	// The email column is gone
	var columns []struct {
		Name string `gorm:"column:name"`
	}
	require.NoError(t, db.DB.Raw("PRAGMA table_info(users)").Scan(&columns).Error)
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.Name)
	}
	assert.NotContains(t, names, "email")
	assert.ElementsMatch(t, []string{"id", "name", "phone", "denomination", "preferredTranslation", "createdAt"}, names)

	// All surviving column values are preserved exactly
	jane, err := db.Users.GetByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", jane.Name)
	assert.Equal(t, "+15550001111", jane.Phone)
	assert.Equal(t, "Baptist", jane.Denomination)
	assert.Equal(t, "NIV", jane.PreferredTranslation)
	assert.Equal(t, "2023-05-01T10:00:00.000000000Z", jane.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000Z07:00"))

	paul, err := db.Users.GetByID("u2")
	require.NoError(t, err)
	assert.Equal(t, "ESV", paul.PreferredTranslation)
	assert.Empty(t, paul.Denomination)
}

func TestEnsureSchema_FailedMigrationLeavesOldTable(t *testing.T) {
	dbPath := testDBPath(t)
	defer os.Remove(dbPath)

	seedLegacyDatabase(t, dbPath)

	// Occupy the rebuild table name so the migration step fails mid-way.
	raw, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = raw.Exec("CREATE TABLE users_new (id TEXT PRIMARY KEY)")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	// Startup still succeeds: migration failure is degraded mode, not fatal.
	db, err := database.New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	// The old shape survives intact, rows included
	has := false
	var columns []struct {
		Name string `gorm:"column:name"`
	}
	require.NoError(t, db.DB.Raw("PRAGMA table_info(users)").Scan(&columns).Error)
	for _, c := range columns {
		if c.Name == "email" {
			has = true
		}
	}
	assert.True(t, has, "legacy email column should remain after failed migration")

	user, err := db.Users.GetByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
}

func TestResetAll(t *testing.T) {
	dbPath := testDBPath(t)
	defer os.Remove(dbPath)

	db, err := database.New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	user, err := db.Users.Create(users.CreateParams{Name: "Jane", Phone: "+15550001111"})
	require.NoError(t, err)
	_, err = db.Verses.Create(verses.CreateParams{
		Book: "John", Chapter: 3, Verse: 16,
		Content: "For God so loved the world...", Reference: "John 3:16",
		Translation: "NIV", UserID: user.ID,
	})
	require.NoError(t, err)

	require.NoError(t, db.ResetAll())

	userList, err := db.Users.ListAll()
	require.NoError(t, err)
	assert.Empty(t, userList)

	verseList, err := db.Verses.ListAll()
	require.NoError(t, err)
	assert.Empty(t, verseList)
}

func TestFacade_ForwardsToRepositories(t *testing.T) {
	dbPath := testDBPath(t)
	defer os.Remove(dbPath)

	db, err := database.New(dbPath)
	require.NoError(t, err)
	defer db.Close()

	user, err := db.CreateUser(users.CreateParams{Name: "Jane", Phone: "+15550001111"})
	require.NoError(t, err)

	byPhone, err := db.GetUserByPhone("+15550001111")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byPhone.ID)

	verse, err := db.AddVerse(verses.CreateParams{
		Book: "John", Chapter: 3, Verse: 16,
		Content: "For God so loved the world...", Reference: "John 3:16",
		Translation: "NIV", UserID: user.ID,
	})
	require.NoError(t, err)

	list, err := db.ListVersesByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, verse.ID, list[0].ID)

	require.NoError(t, db.DeleteVerse(verse.ID))
	list, err = db.ListAllVerses()
	require.NoError(t, err)
	assert.Empty(t, list)
}
