package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TitleNature discriminates receivables (money in) from payables (money out).
type TitleNature string

const (
	Receivable TitleNature = "RECEIVABLE"
	Payable    TitleNature = "PAYABLE"
)

// TitleStatus is the lifecycle state of a title.
// OVERDUE is never stored; it is derived for display from the due date.
type TitleStatus string

const (
	TitlePending   TitleStatus = "PENDING"
	TitlePartial   TitleStatus = "PARTIAL"
	TitleSettled   TitleStatus = "SETTLED"
	TitleCancelled TitleStatus = "CANCELLED"
	TitleOverdue   TitleStatus = "OVERDUE" // derived, display only
)

// TitleKind is the instrument type behind the obligation.
type TitleKind string

const (
	KindInvoice    TitleKind = "INVOICE"
	KindPromissory TitleKind = "PROMISSORY_NOTE"
	KindCheck      TitleKind = "CHECK"
	KindCard       TitleKind = "CARD"
	KindPix        TitleKind = "PIX"
	KindCash       TitleKind = "CASH"
	KindOther      TitleKind = "OTHER"
)

// Title is a single receivable or payable financial obligation.
// Receivables and payables are structurally symmetric; Nature carries the
// in/out semantics.
type Title struct {
	TitleID        string      `json:"titleID"` // Primary Key (UUID)
	CompanyID      string      `json:"companyID"`
	Nature         TitleNature `json:"nature"`
	CounterpartyID string      `json:"counterpartyID"` // FK -> Counterparty (Not Null)
	CategoryID     string      `json:"categoryID"`     // FK -> Category (Not Null)

	Document          string    `json:"document"` // e.g. invoice number
	Series            string    `json:"series"`
	InstallmentNumber int       `json:"installmentNumber"` // 0 when not part of a batch
	Kind              TitleKind `json:"kind"`
	Description       string    `json:"description"`

	IssueDate      time.Time  `json:"issueDate"`
	DueDate        time.Time  `json:"dueDate"`
	SettlementDate *time.Time `json:"settlementDate,omitempty"` // date of the latest baixa

	Principal          decimal.Decimal `json:"principal"`
	Additions          decimal.Decimal `json:"additions"` // interest/fees
	Discounts          decimal.Decimal `json:"discounts"`
	Total              decimal.Decimal `json:"total"`              // principal + additions - discounts
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"` // 0 <= balance <= total

	Status TitleStatus `json:"status"`

	AuditFields
	SoftDeleteFields
}

// HasSettlementActivity reports whether any settlement has ever reduced
// the balance. Structural edits and cancellation are forbidden once true.
func (t *Title) HasSettlementActivity() bool {
	return t.SettlementDate != nil ||
		t.Status == TitlePartial || t.Status == TitleSettled ||
		t.OutstandingBalance.LessThan(t.Total)
}

// IsTerminal reports whether the title reached a terminal lifecycle state.
func (t *Title) IsTerminal() bool {
	return t.Status == TitleSettled || t.Status == TitleCancelled
}

// DisplayStatus derives the presentation status for a reference date:
// PENDING/PARTIAL titles past their due date read as OVERDUE.
func (t *Title) DisplayStatus(ref time.Time) TitleStatus {
	if (t.Status == TitlePending || t.Status == TitlePartial) && t.DueDate.Before(ref) && !sameDay(t.DueDate, ref) {
		return TitleOverdue
	}
	return t.Status
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
