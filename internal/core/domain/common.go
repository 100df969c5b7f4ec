package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// SoftDeleteFields marks a record as logically removed. Repositories
// exclude rows with a non-nil DeletedAt from every default query.
type SoftDeleteFields struct {
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	DeletedBy *string    `json:"deletedBy,omitempty"`
}

// IsDeleted reports whether the record carries a soft-delete marker.
func (s SoftDeleteFields) IsDeleted() bool {
	return s.DeletedAt != nil
}
