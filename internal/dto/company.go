package dto

import (
	"time"

	"github.com/finledger/fin_titles_app/internal/core/domain"
)

// CreateCompanyRequest registers a new tenant.
type CreateCompanyRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	TaxID    string  `json:"taxID" validate:"required,min=11,max=14"`
	BranchOf *string `json:"branchOf,omitempty" validate:"omitempty,uuid"`
}

func (r *CreateCompanyRequest) Validate() error {
	return runTagValidation(r)
}

// UpdateCompanyRequest patches tenant details.
type UpdateCompanyRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	return runTagValidation(r)
}

// AddMemberRequest grants a user a role in the company.
type AddMemberRequest struct {
	UserID string                 `json:"userID" validate:"required,uuid"`
	Role   domain.UserCompanyRole `json:"role" validate:"required,oneof=ADMIN MEMBER READ_ONLY"`
}

func (r *AddMemberRequest) Validate() error {
	return runTagValidation(r)
}

// CompanyResponse is the API shape of a company.
type CompanyResponse struct {
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxID"`
	BranchOf  *string   `json:"branchOf,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a domain company.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		BranchOf:  c.BranchOf,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}
