package dto

import (
	"fmt"
	"time"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCounterpartyRequest registers a client/supplier.
type CreateCounterpartyRequest struct {
	Name  string                  `json:"name" validate:"required,min=2,max=200"`
	TaxID string                  `json:"taxID" validate:"required,min=11,max=14"`
	Type  domain.CounterpartyType `json:"type" validate:"required,oneof=CLIENT SUPPLIER BOTH"`
	Email string                  `json:"email" validate:"omitempty,email"`
}

func (r *CreateCounterpartyRequest) Validate() error {
	return runTagValidation(r)
}

// CounterpartyResponse is the API shape of a counterparty.
type CounterpartyResponse struct {
	CounterpartyID string                  `json:"counterpartyID"`
	Name           string                  `json:"name"`
	TaxID          string                  `json:"taxID"`
	Type           domain.CounterpartyType `json:"type"`
	Email          string                  `json:"email"`
	IsActive       bool                    `json:"isActive"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ToCounterpartyResponse converts a domain counterparty.
func ToCounterpartyResponse(c *domain.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		CounterpartyID: c.CounterpartyID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		Type:           c.Type,
		Email:          c.Email,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

// CreateCategoryRequest registers a classification node.
type CreateCategoryRequest struct {
	Name     string              `json:"name" validate:"required,min=2,max=200"`
	Code     string              `json:"code" validate:"required,max=20"`
	Kind     domain.CategoryKind `json:"kind" validate:"required,oneof=RECEIVABLE PAYABLE BOTH"`
	ParentID *string             `json:"parentID,omitempty" validate:"omitempty,uuid"`
}

func (r *CreateCategoryRequest) Validate() error {
	return runTagValidation(r)
}

// CategoryResponse is the API shape of a category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	Name       string              `json:"name"`
	Code       string              `json:"code"`
	Kind       domain.CategoryKind `json:"kind"`
	ParentID   *string             `json:"parentID,omitempty"`
	IsActive   bool                `json:"isActive"`
}

// ToCategoryResponse converts a domain category.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Code:       c.Code,
		Kind:       c.Kind,
		ParentID:   c.ParentID,
		IsActive:   c.IsActive,
	}
}

// CreateBankAccountRequest registers a bank account with its opening balance.
type CreateBankAccountRequest struct {
	Name           string          `json:"name" validate:"required,min=2,max=200"`
	BankCode       string          `json:"bankCode" validate:"required,max=10"`
	Agency         string          `json:"agency" validate:"max=20"`
	Number         string          `json:"number" validate:"required,max=30"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

func (r *CreateBankAccountRequest) Validate() error {
	if err := runTagValidation(r); err != nil {
		return err
	}
	if r.OpeningBalance.IsNegative() {
		return fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// BankAccountResponse is the API shape of a bank account.
type BankAccountResponse struct {
	BankAccountID string          `json:"bankAccountID"`
	Name          string          `json:"name"`
	BankCode      string          `json:"bankCode"`
	Agency        string          `json:"agency"`
	Number        string          `json:"number"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
}

// ToBankAccountResponse converts a domain bank account.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: a.BankAccountID,
		Name:          a.Name,
		BankCode:      a.BankCode,
		Agency:        a.Agency,
		Number:        a.Number,
		Balance:       a.Balance,
		IsActive:      a.IsActive,
	}
}

// BankMovementResponse is one account ledger line.
type BankMovementResponse struct {
	MovementID   string              `json:"movementID"`
	SettlementID *string             `json:"settlementID,omitempty"`
	Type         domain.MovementType `json:"type"`
	Amount       decimal.Decimal     `json:"amount"`
	BalanceAfter decimal.Decimal     `json:"balanceAfter"`
	Date         time.Time           `json:"date"`
	Description  string              `json:"description"`
}

// ToBankMovementResponses converts domain movements.
func ToBankMovementResponses(ms []domain.BankMovement) []BankMovementResponse {
	out := make([]BankMovementResponse, len(ms))
	for i, m := range ms {
		out[i] = BankMovementResponse{
			MovementID:   m.MovementID,
			SettlementID: m.SettlementID,
			Type:         m.Type,
			Amount:       m.Amount,
			BalanceAfter: m.BalanceAfter,
			Date:         m.Date,
			Description:  m.Description,
		}
	}
	return out
}

// ListMovementsResponse pages bank movements with a continuation token.
type ListMovementsResponse struct {
	Movements []BankMovementResponse `json:"movements"`
	NextToken *string                `json:"nextToken,omitempty"`
}
