package dto

import (
	"fmt"
	"time"

	"github.com/finledger/fin_titles_app/internal/apperrors"
	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CreateTitleRequest is the payload for creating a receivable or payable.
// Total is optional; when supplied it must reconcile with
// principal + additions - discounts within 0.01.
type CreateTitleRequest struct {
	Nature         domain.TitleNature `json:"nature" validate:"required,oneof=RECEIVABLE PAYABLE"`
	CounterpartyID string             `json:"counterpartyID" validate:"required,uuid"`
	CategoryID     string             `json:"categoryID" validate:"required,uuid"`

	Document          string           `json:"document" validate:"required,max=100"`
	Series            string           `json:"series" validate:"max=20"`
	InstallmentNumber int              `json:"installmentNumber" validate:"gte=0"`
	Kind              domain.TitleKind `json:"kind" validate:"required,oneof=INVOICE PROMISSORY_NOTE CHECK CARD PIX CASH OTHER"`
	Description       string           `json:"description" validate:"max=500"`

	IssueDate      time.Time  `json:"issueDate" validate:"required"`
	DueDate        time.Time  `json:"dueDate" validate:"required"`
	SettlementDate *time.Time `json:"settlementDate,omitempty"`

	Principal decimal.Decimal  `json:"principal"`
	Additions decimal.Decimal  `json:"additions"`
	Discounts decimal.Decimal  `json:"discounts"`
	Total     *decimal.Decimal `json:"total,omitempty"`
}

// Validate applies tag validation plus the date-ordering and amount
// reconciliation rules.
func (r *CreateTitleRequest) Validate() error {
	if err := runTagValidation(r); err != nil {
		return err
	}
	if r.Principal.IsNegative() || r.Additions.IsNegative() || r.Discounts.IsNegative() {
		return fmt.Errorf("%w: principal, additions and discounts must not be negative", apperrors.ErrValidation)
	}
	computed := money.ComputeTotal(r.Principal, r.Additions, r.Discounts)
	if computed.IsNegative() {
		return fmt.Errorf("%w: discounts exceed principal plus additions", apperrors.ErrValidation)
	}
	if r.Total != nil && !money.WithinTolerance(*r.Total, computed) {
		return fmt.Errorf("%w: supplied total %s does not match computed total %s", apperrors.ErrValidation, r.Total, computed)
	}
	if r.DueDate.Before(r.IssueDate) {
		return fmt.Errorf("%w: due date must not precede issue date", apperrors.ErrValidation)
	}
	if r.SettlementDate != nil && r.SettlementDate.Before(r.DueDate) {
		return fmt.Errorf("%w: settlement date must not precede due date", apperrors.ErrValidation)
	}
	return nil
}

// ComputedTotal returns the effective total for the request.
func (r *CreateTitleRequest) ComputedTotal() decimal.Decimal {
	return money.ComputeTotal(r.Principal, r.Additions, r.Discounts)
}

// UpdateTitleRequest is a partial update of a title's structural fields.
// The service rejects it outright once the title has settlement activity.
type UpdateTitleRequest struct {
	CounterpartyID *string           `json:"counterpartyID,omitempty" validate:"omitempty,uuid"`
	CategoryID     *string           `json:"categoryID,omitempty" validate:"omitempty,uuid"`
	Document       *string           `json:"document,omitempty" validate:"omitempty,max=100"`
	Series         *string           `json:"series,omitempty" validate:"omitempty,max=20"`
	Kind           *domain.TitleKind `json:"kind,omitempty" validate:"omitempty,oneof=INVOICE PROMISSORY_NOTE CHECK CARD PIX CASH OTHER"`
	Description    *string           `json:"description,omitempty" validate:"omitempty,max=500"`
	IssueDate      *time.Time        `json:"issueDate,omitempty"`
	DueDate        *time.Time        `json:"dueDate,omitempty"`
	Principal      *decimal.Decimal  `json:"principal,omitempty"`
	Additions      *decimal.Decimal  `json:"additions,omitempty"`
	Discounts      *decimal.Decimal  `json:"discounts,omitempty"`
}

// Validate checks field-level constraints; date ordering is re-validated by
// the service against the merged old/new values.
func (r *UpdateTitleRequest) Validate() error {
	if err := runTagValidation(r); err != nil {
		return err
	}
	for name, d := range map[string]*decimal.Decimal{"principal": r.Principal, "additions": r.Additions, "discounts": r.Discounts} {
		if d != nil && d.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, name)
		}
	}
	return nil
}

// HasAmountChange reports whether any monetary component is being patched.
func (r *UpdateTitleRequest) HasAmountChange() bool {
	return r.Principal != nil || r.Additions != nil || r.Discounts != nil
}

// CancelTitleRequest carries the mandatory cancellation justification.
type CancelTitleRequest struct {
	Justification string `json:"justification" validate:"required,min=10,max=500"`
}

func (r *CancelTitleRequest) Validate() error {
	return runTagValidation(r)
}

// GenerateInstallmentsRequest splits one obligation into n dated titles.
type GenerateInstallmentsRequest struct {
	Nature         domain.TitleNature `json:"nature" validate:"required,oneof=RECEIVABLE PAYABLE"`
	CounterpartyID string             `json:"counterpartyID" validate:"required,uuid"`
	CategoryID     string             `json:"categoryID" validate:"required,uuid"`
	Document       string             `json:"document" validate:"required,max=100"`
	Series         string             `json:"series" validate:"max=20"`
	Kind           domain.TitleKind   `json:"kind" validate:"required,oneof=INVOICE PROMISSORY_NOTE CHECK CARD PIX CASH OTHER"`
	Description    string             `json:"description" validate:"max=500"`

	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Count        int             `json:"count" validate:"required,gte=2,lte=120"`
	IssueDate    time.Time       `json:"issueDate" validate:"required"`
	FirstDueDate time.Time       `json:"firstDueDate" validate:"required"`
	IntervalDays int             `json:"intervalDays" validate:"required,gte=1,lte=366"`
}

func (r *GenerateInstallmentsRequest) Validate() error {
	if err := runTagValidation(r); err != nil {
		return err
	}
	if !r.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}
	if r.FirstDueDate.Before(r.IssueDate) {
		return fmt.Errorf("%w: first due date must not precede issue date", apperrors.ErrValidation)
	}
	return nil
}

// ListTitlesParams filters and paginates title listings.
type ListTitlesParams struct {
	Nature         *domain.TitleNature
	Status         *domain.TitleStatus
	CounterpartyID *string
	From           *time.Time
	To             *time.Time
	Limit          int
	NextToken      *string
}

// TitleResponse is the API shape of a title. Status carries the derived
// OVERDUE presentation when the title is open past its due date.
type TitleResponse struct {
	TitleID            string             `json:"titleID"`
	CompanyID          string             `json:"companyID"`
	Nature             domain.TitleNature `json:"nature"`
	CounterpartyID     string             `json:"counterpartyID"`
	CategoryID         string             `json:"categoryID"`
	Document           string             `json:"document"`
	Series             string             `json:"series"`
	InstallmentNumber  int                `json:"installmentNumber"`
	Kind               domain.TitleKind   `json:"kind"`
	Description        string             `json:"description"`
	IssueDate          time.Time          `json:"issueDate"`
	DueDate            time.Time          `json:"dueDate"`
	SettlementDate     *time.Time         `json:"settlementDate,omitempty"`
	Principal          decimal.Decimal    `json:"principal"`
	Additions          decimal.Decimal    `json:"additions"`
	Discounts          decimal.Decimal    `json:"discounts"`
	Total              decimal.Decimal    `json:"total"`
	OutstandingBalance decimal.Decimal    `json:"outstandingBalance"`
	Status             domain.TitleStatus `json:"status"`
	CreatedAt          time.Time          `json:"createdAt"`
	LastUpdatedAt      time.Time          `json:"lastUpdatedAt"`
}

// ToTitleResponse converts a domain title, deriving the display status.
func ToTitleResponse(t *domain.Title, ref time.Time) TitleResponse {
	return TitleResponse{
		TitleID:            t.TitleID,
		CompanyID:          t.CompanyID,
		Nature:             t.Nature,
		CounterpartyID:     t.CounterpartyID,
		CategoryID:         t.CategoryID,
		Document:           t.Document,
		Series:             t.Series,
		InstallmentNumber:  t.InstallmentNumber,
		Kind:               t.Kind,
		Description:        t.Description,
		IssueDate:          t.IssueDate,
		DueDate:            t.DueDate,
		SettlementDate:     t.SettlementDate,
		Principal:          t.Principal,
		Additions:          t.Additions,
		Discounts:          t.Discounts,
		Total:              t.Total,
		OutstandingBalance: t.OutstandingBalance,
		Status:             t.DisplayStatus(ref),
		CreatedAt:          t.CreatedAt,
		LastUpdatedAt:      t.LastUpdatedAt,
	}
}

// ToTitleResponses converts a slice of domain titles.
func ToTitleResponses(titles []domain.Title, ref time.Time) []TitleResponse {
	out := make([]TitleResponse, len(titles))
	for i := range titles {
		out[i] = ToTitleResponse(&titles[i], ref)
	}
	return out
}

// ListTitlesResponse pages titles with a continuation token.
type ListTitlesResponse struct {
	Titles    []TitleResponse `json:"titles"`
	NextToken *string         `json:"nextToken,omitempty"`
}
