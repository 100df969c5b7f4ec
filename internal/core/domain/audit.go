package domain

import "time"

// AuditEventType enumerates the domain events recorded in the audit log.
type AuditEventType string

const (
	AuditTitleCreated        AuditEventType = "TITLE_CREATED"
	AuditTitleUpdated        AuditEventType = "TITLE_UPDATED"
	AuditTitleCancelled      AuditEventType = "TITLE_CANCELLED"
	AuditTitleDeleted        AuditEventType = "TITLE_DELETED"
	AuditTitleSettled        AuditEventType = "TITLE_SETTLED"
	AuditSettlementReversed  AuditEventType = "SETTLEMENT_REVERSED"
	AuditInstallmentsCreated AuditEventType = "INSTALLMENTS_CREATED"
)

// AuditSeverity grades audit entries.
type AuditSeverity string

const (
	SeverityInfo     AuditSeverity = "INFO"
	SeverityWarning  AuditSeverity = "WARNING"
	SeverityCritical AuditSeverity = "CRITICAL"
)

// AuditEntry is an append-only record of a domain event. For cancellation
// the write is mandatory: the operation aborts if the entry cannot be
// persisted in the same transaction.
type AuditEntry struct {
	AuditID   string            `json:"auditID"` // Primary Key (UUID)
	EventType AuditEventType    `json:"eventType"`
	Severity  AuditSeverity     `json:"severity"`
	ActorID   string            `json:"actorID"`
	CompanyID string            `json:"companyID"`
	EntityID  string            `json:"entityID"` // title/settlement the event refers to
	Details   map[string]string `json:"details"`
	Success   bool              `json:"success"`
	Timestamp time.Time         `json:"timestamp"`
}
