package audit

import (
	"encoding/json"
	"log"
	"time"

	"versekeeper/internal/database/audit"
	"versekeeper/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogAuth records an authentication event. userID may be empty for failed
// attempts against unknown phone numbers.
func (s *Service) LogAuth(userID, action, ipAddr, userAgent string, success bool) {
	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventAuth,
		Action:    action,
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
		Status:    entities.AuditStatusSuccess,
	}

	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.LogAsync(event)
}

// LogVerse records a verse mutation (create, update or delete).
func (s *Service) LogVerse(userID, action, verseID, reference string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventVerse,
		Action:      action,
		Description: reference,
		EntityType:  "verse",
		EntityID:    verseID,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogProfile records a profile change event.
func (s *Service) LogProfile(userID, description string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventProfile,
		Action:      "profile_update",
		Description: description,
		EntityType:  "user",
		EntityID:    userID,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogReset records a full database wipe.
func (s *Service) LogReset(usersCount, versesCount int, err error) {
	event := &entities.AuditEvent{
		EventType: entities.AuditEventReset,
		Action:    "database_reset",
		Status:    entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"users_count":  usersCount,
		"verses_count": versesCount,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogIntegrity records the outcome of an integrity scan.
func (s *Service) LogIntegrity(orphanCount int, err error) {
	event := &entities.AuditEvent{
		EventType: entities.AuditEventIntegrity,
		Action:    "integrity_scan",
		Status:    entities.AuditStatusSuccess,
	}

	metadata := map[string]any{"orphan_verses": orphanCount}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(userID string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(userID, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
