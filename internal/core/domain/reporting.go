package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportDateAxis selects which date field drives report filtering and
// month grouping.
type ReportDateAxis string

const (
	AxisIssue      ReportDateAxis = "ISSUE"
	AxisDue        ReportDateAxis = "DUE"
	AxisSettlement ReportDateAxis = "SETTLEMENT"
)

// TitleReportRow is one flat line of the titles report.
type TitleReportRow struct {
	TitleID          string          `json:"titleID"`
	Nature           TitleNature     `json:"nature"`
	Document         string          `json:"document"`
	Series           string          `json:"series"`
	CounterpartyID   string          `json:"counterpartyID"`
	CounterpartyName string          `json:"counterpartyName"`
	CategoryID       string          `json:"categoryID"`
	CategoryName     string          `json:"categoryName"`
	IssueDate        time.Time       `json:"issueDate"`
	DueDate          time.Time       `json:"dueDate"`
	SettlementDate   *time.Time      `json:"settlementDate,omitempty"`
	Status           TitleStatus     `json:"status"`
	Total            decimal.Decimal `json:"total"`
	Outstanding      decimal.Decimal `json:"outstanding"`
}

// ReportGroupTotal is one grouped subtotal (per counterparty or per
// YYYY-MM month). Each figure is rounded independently to 2 decimals.
type ReportGroupTotal struct {
	Key         string          `json:"key"` // counterparty id or YYYY-MM
	Label       string          `json:"label"`
	Count       int             `json:"count"`
	Total       decimal.Decimal `json:"total"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// TitleReport bundles the rows with both group axes and grand totals.
type TitleReport struct {
	Rows              []TitleReportRow   `json:"rows"`
	ByCounterparty    []ReportGroupTotal `json:"byCounterparty"`
	ByMonth           []ReportGroupTotal `json:"byMonth"`
	GrandTotal        decimal.Decimal    `json:"grandTotal"`
	GrandOutstanding  decimal.Decimal    `json:"grandOutstanding"`
}

// AgingBucketKey names the standard aging buckets.
type AgingBucketKey string

const (
	AgingCurrent AgingBucketKey = "CURRENT"
	Aging1To30   AgingBucketKey = "1_30"
	Aging31To60  AgingBucketKey = "31_60"
	Aging61To90  AgingBucketKey = "61_90"
	AgingOver90  AgingBucketKey = "OVER_90"
)

// AgingBucket aggregates open titles by how many days overdue they are.
type AgingBucket struct {
	Key         AgingBucketKey  `json:"key"`
	Count       int             `json:"count"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// AgingReport is the aging distribution of open titles at a reference date.
type AgingReport struct {
	ReferenceDate    time.Time       `json:"referenceDate"`
	Nature           TitleNature     `json:"nature"`
	Buckets          []AgingBucket   `json:"buckets"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
}
