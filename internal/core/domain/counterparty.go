package domain

// CounterpartyType distinguishes who owes vs. who is owed.
type CounterpartyType string

const (
	CounterpartyClient   CounterpartyType = "CLIENT"
	CounterpartySupplier CounterpartyType = "SUPPLIER"
	CounterpartyBoth     CounterpartyType = "BOTH"
)

// Counterparty is the person or entity a title is owed by or owed to.
type Counterparty struct {
	CounterpartyID string           `json:"counterpartyID"` // Primary Key (UUID)
	CompanyID      string           `json:"companyID"`      // FK -> Company
	Name           string           `json:"name"`
	TaxID          string           `json:"taxID"` // CNPJ/CPF
	Type           CounterpartyType `json:"type"`
	Email          string           `json:"email"`
	IsActive       bool             `json:"isActive"`
	AuditFields
	SoftDeleteFields
}
