package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// Actions recorded by the services.
const (
	ActionEventCreated       = "EVENT_CREATED"
	ActionEventUpdated       = "EVENT_UPDATED"
	ActionEventDeleted       = "EVENT_DELETED"
	ActionParticipantRemoved = "PARTICIPANT_REMOVED"
	ActionInvitationsSent    = "INVITATIONS_SENT"
	ActionAssignmentsDrawn   = "ASSIGNMENTS_DRAWN"
	ActionAssignmentsReset   = "ASSIGNMENTS_RESET"
	ActionRosterExported     = "ROSTER_EXPORTED"

	StatusSuccess = "success"
	StatusFailure = "failure"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID    *string        `gorm:"type:uuid;index" json:"event_id"` // nullable: failed creates have no event yet
	ActorEmail string         `gorm:"size:255;index" json:"actor_email"`
	Action     string         `gorm:"size:100;not null;index" json:"action"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress  string         `gorm:"size:45" json:"ip_address"`
	Status     string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// PaginatedAuditLogs represents paginated audit log response
type PaginatedAuditLogs struct {
	Data       []AuditLog `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
