package audit_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versekeeper/internal/database"
	"versekeeper/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()

	dbPath := "./test_audit_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.New(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestRepository_LogEvent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	event := &entities.AuditEvent{
		UserID:    "u1",
		EventType: entities.AuditEventAuth,
		Action:    "login",
		Status:    entities.AuditStatusSuccess,
	}
	require.NoError(t, db.Audit.LogEvent(event))

	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())

	events, total, err := db.Audit.GetEvents("u1", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, "login", events[0].Action)
}

func TestRepository_GetEvents_FiltersByUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, userID := range []string{"u1", "u1", "u2"} {
		require.NoError(t, db.Audit.LogEvent(&entities.AuditEvent{
			UserID:    userID,
			EventType: entities.AuditEventVerse,
			Action:    "verse_create",
			Status:    entities.AuditStatusSuccess,
		}))
	}

	events, total, err := db.Audit.GetEvents("u1", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, events, 2)

	all, total, err := db.Audit.GetEvents("", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)
}

func TestRepository_GetEvents_NewestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, action := range []string{"first", "second"} {
		require.NoError(t, db.Audit.LogEvent(&entities.AuditEvent{
			EventType: entities.AuditEventReset,
			Action:    action,
			Status:    entities.AuditStatusSuccess,
		}))
		time.Sleep(2 * time.Millisecond)
	}

	events, _, err := db.Audit.GetEvents("", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "second", events[0].Action)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	old := &entities.AuditEvent{
		EventType: entities.AuditEventAuth,
		Action:    "login",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: entities.NewTimestamp(time.Now().Add(-48 * time.Hour)),
	}
	require.NoError(t, db.Audit.LogEvent(old))
	require.NoError(t, db.Audit.LogEvent(&entities.AuditEvent{
		EventType: entities.AuditEventAuth,
		Action:    "login",
		Status:    entities.AuditStatusSuccess,
	}))

	deleted, err := db.Audit.DeleteOldEvents(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, total, err := db.Audit.GetEvents("", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
