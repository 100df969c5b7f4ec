package domain

// UserCompanyRole defines the role a user holds within a company.
type UserCompanyRole string

const (
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READ_ONLY"
)

// CanActAs reports whether the role satisfies the required role.
// ADMIN > MEMBER > READ_ONLY.
func (r UserCompanyRole) CanActAs(required UserCompanyRole) bool {
	rank := map[UserCompanyRole]int{RoleReadOnly: 1, RoleMember: 2, RoleAdmin: 3}
	return rank[r] >= rank[required]
}

// Company is the tenant scope that owns titles, bank accounts and
// reference data. Every service operation is scoped to one company.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (UUID)
	Name      string `json:"name"`
	TaxID     string `json:"taxID"` // CNPJ, unique per company
	BranchOf  *string `json:"branchOf,omitempty"` // Optional parent company link
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// UserCompany links a user to a company with a role.
type UserCompany struct {
	UserID    string          `json:"userID"`
	CompanyID string          `json:"companyID"`
	Role      UserCompanyRole `json:"role"`
	AuditFields
}
