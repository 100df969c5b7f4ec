package export

import (
	"fmt"
	"io"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Report"

// WriteTitleReportXLSX renders the report rows plus a grand total line to
// a single-sheet workbook.
func WriteTitleReportXLSX(w io.Writer, report *domain.TitleReport) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := make([]any, 0, 12)
	for _, h := range titleReportHeader() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i := range report.Rows {
		row := &report.Rows[i]
		settlementDate := ""
		if row.SettlementDate != nil {
			settlementDate = row.SettlementDate.Format(dateLayout)
		}
		total, _ := row.Total.Float64()
		outstanding, _ := row.Outstanding.Float64()
		values := []any{
			row.TitleID, string(row.Nature), row.Document, row.Series,
			row.CounterpartyName, row.CategoryName,
			row.IssueDate.Format(dateLayout), row.DueDate.Format(dateLayout), settlementDate,
			string(row.Status), total, outstanding,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i, err)
		}
	}

	grandTotal, _ := report.GrandTotal.Float64()
	grandOutstanding, _ := report.GrandOutstanding.Float64()
	totalRow := []any{"TOTAL", "", "", "", "", "", "", "", "", "", grandTotal, grandOutstanding}
	cell := fmt.Sprintf("A%d", len(report.Rows)+2)
	if err := f.SetSheetRow(reportSheet, cell, &totalRow); err != nil {
		return fmt.Errorf("failed to write total row: %w", err)
	}

	return f.Write(w)
}

// WriteCashFlowXLSX renders the day-by-day buckets to a single-sheet
// workbook.
func WriteCashFlowXLSX(w io.Writer, statement *domain.CashFlowStatement) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "CashFlow"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create cash flow sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := []any{
		"date",
		"realized_in", "realized_out", "daily_realized", "cumulative_realized",
		"projected_in", "projected_out", "daily_projected", "cumulative_projected",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i := range statement.Buckets {
		b := &statement.Buckets[i]
		realizedIn, _ := b.RealizedIn.Float64()
		realizedOut, _ := b.RealizedOut.Float64()
		dailyRealized, _ := b.DailyRealized.Float64()
		cumRealized, _ := b.CumulativeRealized.Float64()
		projectedIn, _ := b.ProjectedIn.Float64()
		projectedOut, _ := b.ProjectedOut.Float64()
		dailyProjected, _ := b.DailyProjected.Float64()
		cumProjected, _ := b.CumulativeProjected.Float64()
		values := []any{
			b.Date.Format(dateLayout),
			realizedIn, realizedOut, dailyRealized, cumRealized,
			projectedIn, projectedOut, dailyProjected, cumProjected,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write cash flow row %d: %w", i, err)
		}
	}

	return f.Write(w)
}
