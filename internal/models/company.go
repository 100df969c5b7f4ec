package models

// Company is the database row for a tenant.
type Company struct {
	CompanyID string  `db:"company_id"`
	Name      string  `db:"name"`
	TaxID     string  `db:"tax_id"`
	BranchOf  *string `db:"branch_of"`
	IsActive  bool    `db:"is_active"`
	AuditFields
}

// UserCompany links a user to a company with a role.
type UserCompany struct {
	UserID    string `db:"user_id"`
	CompanyID string `db:"company_id"`
	Role      string `db:"role"`
	AuditFields
}
