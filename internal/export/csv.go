package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/finledger/fin_titles_app/internal/core/domain"
)

const dateLayout = "2006-01-02"

func titleReportHeader() []string {
	return []string{
		"title_id", "nature", "document", "series",
		"counterparty", "category",
		"issue_date", "due_date", "settlement_date",
		"status", "total", "outstanding",
	}
}

func titleReportRecord(row *domain.TitleReportRow) []string {
	settlementDate := ""
	if row.SettlementDate != nil {
		settlementDate = row.SettlementDate.Format(dateLayout)
	}
	return []string{
		row.TitleID, string(row.Nature), row.Document, row.Series,
		row.CounterpartyName, row.CategoryName,
		row.IssueDate.Format(dateLayout), row.DueDate.Format(dateLayout), settlementDate,
		string(row.Status), row.Total.StringFixed(2), row.Outstanding.StringFixed(2),
	}
}

// WriteTitleReportCSV streams the report rows followed by a grand total line.
func WriteTitleReportCSV(w io.Writer, report *domain.TitleReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(titleReportHeader()); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for i := range report.Rows {
		if err := cw.Write(titleReportRecord(&report.Rows[i])); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i, err)
		}
	}
	total := []string{
		"TOTAL", "", "", "", "", "", "", "", "", "",
		report.GrandTotal.StringFixed(2), report.GrandOutstanding.StringFixed(2),
	}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("failed to write report total row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteCashFlowCSV streams the day-by-day buckets of a cash flow statement.
func WriteCashFlowCSV(w io.Writer, statement *domain.CashFlowStatement) error {
	cw := csv.NewWriter(w)
	header := []string{
		"date",
		"realized_in", "realized_out", "daily_realized", "cumulative_realized",
		"projected_in", "projected_out", "daily_projected", "cumulative_projected",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write cash flow header: %w", err)
	}
	for i := range statement.Buckets {
		b := &statement.Buckets[i]
		record := []string{
			b.Date.Format(dateLayout),
			b.RealizedIn.StringFixed(2), b.RealizedOut.StringFixed(2),
			b.DailyRealized.StringFixed(2), b.CumulativeRealized.StringFixed(2),
			b.ProjectedIn.StringFixed(2), b.ProjectedOut.StringFixed(2),
			b.DailyProjected.StringFixed(2), b.CumulativeProjected.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write cash flow row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
