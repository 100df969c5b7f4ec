package models

import "time"

// AuditEntry is the database row for one audit log record. Details is
// stored as a JSONB column.
type AuditEntry struct {
	AuditID   string            `db:"audit_id"`
	EventType string            `db:"event_type"`
	Severity  string            `db:"severity"`
	ActorID   string            `db:"actor_id"`
	CompanyID string            `db:"company_id"`
	EntityID  string            `db:"entity_id"`
	Details   map[string]string `db:"details"`
	Success   bool              `db:"success"`
	Timestamp time.Time         `db:"event_timestamp"`
}
