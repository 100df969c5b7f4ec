package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/finledger/fin_titles_app/internal/export"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *domain.TitleReport {
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	settled := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	return &domain.TitleReport{
		Rows: []domain.TitleReportRow{
			{
				TitleID:          "t-1",
				Nature:           domain.Receivable,
				Document:         "NF-100",
				CounterpartyName: "Acme Ltda",
				CategoryName:     "Sales",
				IssueDate:        due.AddDate(0, -1, 0),
				DueDate:          due,
				SettlementDate:   &settled,
				Status:           domain.TitleSettled,
				Total:            decimal.NewFromFloat(350.50),
				Outstanding:      decimal.Zero,
			},
			{
				TitleID:          "t-2",
				Nature:           domain.Receivable,
				Document:         "NF-101",
				CounterpartyName: "Acme Ltda",
				CategoryName:     "Sales",
				IssueDate:        due.AddDate(0, -1, 0),
				DueDate:          due,
				Status:           domain.TitlePending,
				Total:            decimal.NewFromFloat(200.00),
				Outstanding:      decimal.NewFromFloat(200.00),
			},
		},
		GrandTotal:       decimal.NewFromFloat(550.50),
		GrandOutstanding: decimal.NewFromFloat(200.00),
	}
}

func TestWriteTitleReportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteTitleReportCSV(&buf, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 2 rows + total

	assert.Equal(t, "title_id", records[0][0])
	assert.Equal(t, "t-1", records[1][0])
	assert.Equal(t, "2026-03-12", records[1][8])
	assert.Equal(t, "350.50", records[1][10])
	assert.Equal(t, "", records[2][8]) // open title has no settlement date

	totalRow := records[3]
	assert.Equal(t, "TOTAL", totalRow[0])
	assert.Equal(t, "550.50", totalRow[10])
	assert.Equal(t, "200.00", totalRow[11])
}

func TestWriteCashFlowCSV(t *testing.T) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	statement := &domain.CashFlowStatement{
		StartDate: day,
		EndDate:   day.AddDate(0, 0, 1),
		Buckets: []domain.CashFlowBucket{
			{
				Date:                day,
				RealizedIn:          decimal.NewFromInt(1000),
				DailyRealized:       decimal.NewFromInt(1000),
				CumulativeRealized:  decimal.NewFromInt(1000),
				CumulativeProjected: decimal.Zero,
			},
			{
				Date:                day.AddDate(0, 0, 1),
				ProjectedOut:        decimal.NewFromInt(400),
				DailyProjected:      decimal.NewFromInt(-400),
				CumulativeRealized:  decimal.NewFromInt(1000),
				CumulativeProjected: decimal.NewFromInt(-400),
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCashFlowCSV(&buf, statement))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2026-04-01", records[1][0])
	assert.Equal(t, "1000.00", records[1][1])
	assert.Equal(t, "-400.00", records[2][7])
}

func TestWriteTitleReportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteTitleReportXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "title_id", rows[0][0])
	assert.Equal(t, "t-1", rows[1][0])
	assert.Equal(t, "TOTAL", rows[3][0])
}
