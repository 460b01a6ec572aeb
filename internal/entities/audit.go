package entities

type AuditEventType string

const (
	AuditEventAuth      AuditEventType = "auth"
	AuditEventVerse     AuditEventType = "verse"
	AuditEventProfile   AuditEventType = "profile"
	AuditEventReset     AuditEventType = "reset"
	AuditEventIntegrity AuditEventType = "integrity"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent is one row of the activity log.
type AuditEvent struct {
	ID          string         `gorm:"column:id;primaryKey" json:"id"`
	UserID      string         `gorm:"column:userId" json:"userId,omitempty"`
	EventType   AuditEventType `gorm:"column:eventType" json:"eventType"`
	Action      string         `gorm:"column:action" json:"action"` // e.g. "login", "verse_create"
	Description string         `gorm:"column:description" json:"description,omitempty"`
	EntityType  string         `gorm:"column:entityType" json:"entityType,omitempty"` // "user", "verse"
	EntityID    string         `gorm:"column:entityId" json:"entityId,omitempty"`
	Metadata    string         `gorm:"column:metadata" json:"metadata,omitempty"` // JSON for extra data
	IPAddress   string         `gorm:"column:ipAddress" json:"ipAddress,omitempty"`
	UserAgent   string         `gorm:"column:userAgent" json:"userAgent,omitempty"`
	Status      AuditStatus    `gorm:"column:status" json:"status"`
	ErrorMsg    string         `gorm:"column:errorMsg" json:"errorMsg,omitempty"`
	CreatedAt   Timestamp      `gorm:"column:createdAt" json:"createdAt"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
