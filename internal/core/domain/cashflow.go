package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowDetail identifies one title's contribution to a bucket.
type CashFlowDetail struct {
	TitleID          string          `json:"titleID"`
	Description      string          `json:"description"`
	Document         string          `json:"document"`
	CounterpartyID   string          `json:"counterpartyID"`
	CounterpartyName string          `json:"counterpartyName,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
}

// CashFlowBucket aggregates one calendar day of movement. Realized totals
// come from settlement dates (cash basis); projected totals come from due
// dates of still-open titles (accrual forecast). The two tracks never mix.
type CashFlowBucket struct {
	Date time.Time `json:"date"`

	RealizedIn   decimal.Decimal `json:"realizedIn"`
	ProjectedIn  decimal.Decimal `json:"projectedIn"`
	RealizedOut  decimal.Decimal `json:"realizedOut"`
	ProjectedOut decimal.Decimal `json:"projectedOut"`

	DailyRealized  decimal.Decimal `json:"dailyRealized"`  // realizedIn - realizedOut
	DailyProjected decimal.Decimal `json:"dailyProjected"` // projectedIn - projectedOut

	CumulativeRealized  decimal.Decimal `json:"cumulativeRealized"`
	CumulativeProjected decimal.Decimal `json:"cumulativeProjected"`

	RealizedDetails  []CashFlowDetail `json:"realizedDetails"`
	ProjectedDetails []CashFlowDetail `json:"projectedDetails"`
}

// CashFlowTotals sums the whole range; the final cumulative values equal
// the last bucket's cumulative fields.
type CashFlowTotals struct {
	RealizedIn   decimal.Decimal `json:"realizedIn"`
	ProjectedIn  decimal.Decimal `json:"projectedIn"`
	RealizedOut  decimal.Decimal `json:"realizedOut"`
	ProjectedOut decimal.Decimal `json:"projectedOut"`

	FinalRealizedBalance  decimal.Decimal `json:"finalRealizedBalance"`
	FinalProjectedBalance decimal.Decimal `json:"finalProjectedBalance"`
}

// CashFlowStatement is the full day-by-day projection for a date range.
type CashFlowStatement struct {
	StartDate      time.Time        `json:"startDate"`
	EndDate        time.Time        `json:"endDate"`
	BankAccountID  *string          `json:"bankAccountID,omitempty"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	Consolidated   bool             `json:"consolidated"`
	Buckets        []CashFlowBucket `json:"buckets"`
	Totals         CashFlowTotals   `json:"totals"`
}
