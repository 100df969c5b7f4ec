package domain

// CategoryKind restricts which title nature a classification node accepts.
type CategoryKind string

const (
	CategoryReceivable CategoryKind = "RECEIVABLE"
	CategoryPayable    CategoryKind = "PAYABLE"
	CategoryBoth       CategoryKind = "BOTH"
)

// Accepts reports whether the category can classify a title of the given nature.
func (k CategoryKind) Accepts(n TitleNature) bool {
	switch k {
	case CategoryBoth:
		return true
	case CategoryReceivable:
		return n == Receivable
	case CategoryPayable:
		return n == Payable
	}
	return false
}

// Category is a chart-of-accounts classification node for titles.
type Category struct {
	CategoryID string       `json:"categoryID"` // Primary Key (UUID)
	CompanyID  string       `json:"companyID"`  // FK -> Company
	Name       string       `json:"name"`
	Code       string       `json:"code"` // e.g. "1.02.03"
	Kind       CategoryKind `json:"kind"`
	ParentID   *string      `json:"parentID,omitempty"` // Optional parent node
	IsActive   bool         `json:"isActive"`
	AuditFields
	SoftDeleteFields
}
