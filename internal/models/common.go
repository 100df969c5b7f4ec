package models

import "time"

// AuditFields holds the common audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// SoftDeleteFields holds the soft-delete columns. A row with deleted_at
// set is invisible to every read path.
type SoftDeleteFields struct {
	DeletedAt *time.Time `db:"deleted_at"`
	DeletedBy *string    `db:"deleted_by"`
}
