// Package audit provides database operations for the activity log.
package audit

import (
	"time"

	"gorm.io/gorm"

	"versekeeper/internal/database/dberr"
	"versekeeper/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event, filling in id and timestamp when absent.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.ID == "" {
		event.ID = entities.NewID()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = entities.Now()
	}
	if err := r.db.Create(event).Error; err != nil {
		return dberr.Wrap("log audit event", err)
	}
	return nil
}

// GetEvents retrieves paginated audit events, most recent first, optionally
// filtered by user.
func (r *Repository) GetEvents(userID string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	var events []entities.AuditEvent
	var total int64

	query := r.db.Model(&entities.AuditEvent{})
	if userID != "" {
		query = query.Where("userId = ?", userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dberr.Wrap("count audit events", err)
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("createdAt DESC").Limit(limit).Offset(offset).Find(&events).Error
	if err != nil {
		return nil, 0, dberr.Wrap("get audit events", err)
	}
	return events, total, nil
}

// DeleteOldEvents removes audit events older than the given time and returns
// how many were deleted.
func (r *Repository) DeleteOldEvents(olderThan time.Time) (int64, error) {
	cutoff := entities.NewTimestamp(olderThan)
	result := r.db.Where("createdAt < ?", cutoff).Delete(&entities.AuditEvent{})
	if result.Error != nil {
		return 0, dberr.Wrap("delete old audit events", result.Error)
	}
	return result.RowsAffected, nil
}
