package models

// Counterparty is the database row for a client/supplier.
type Counterparty struct {
	CounterpartyID string `db:"counterparty_id"`
	CompanyID      string `db:"company_id"`
	Name           string `db:"name"`
	TaxID          string `db:"tax_id"`
	Type           string `db:"counterparty_type"`
	Email          string `db:"email"`
	IsActive       bool   `db:"is_active"`
	AuditFields
	SoftDeleteFields
}

// Category is the database row for a chart-of-accounts node.
type Category struct {
	CategoryID string  `db:"category_id"`
	CompanyID  string  `db:"company_id"`
	Name       string  `db:"name"`
	Code       string  `db:"code"`
	Kind       string  `db:"kind"`
	ParentID   *string `db:"parent_id"`
	IsActive   bool    `db:"is_active"`
	AuditFields
	SoftDeleteFields
}
