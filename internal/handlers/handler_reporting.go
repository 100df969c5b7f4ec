package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/finledger/fin_titles_app/internal/export"
	"github.com/finledger/fin_titles_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportingHandler handles the read-only report and cash flow endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	cashFlowService  portssvc.CashFlowSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade, cashFlowService portssvc.CashFlowSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
		cashFlowService:  cashFlowService,
	}
}

// titleReport godoc
// @Summary Titles report
// @Description Flat rows with grand totals and per-counterparty / per-month groupings, filtered on a selectable date axis
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Param nature query string false "RECEIVABLE or PAYABLE"
// @Param status query string false "Stored status filter"
// @Param counterpartyID query string false "Counterparty filter"
// @Param axis query string false "ISSUE, DUE or SETTLEMENT (default DUE)"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} domain.TitleReport
// @Router /companies/{companyID}/reports/titles [get]
func (h *reportingHandler) titleReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	params, err := titleReportParamsFromQuery(c)
	if err != nil {
		logger.Warn("Invalid report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.TitleReport(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// exportTitleReport godoc
// @Summary Export the titles report
// @Description Streams the report as CSV or XLSX
// @Tags reports
// @Produce octet-stream
// @Param companyID path string true "Company ID"
// @Param format query string true "csv or xlsx"
// @Success 200 {file} file
// @Router /companies/{companyID}/reports/titles/export [get]
func (h *reportingHandler) exportTitleReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	params, err := titleReportParamsFromQuery(c)
	if err != nil {
		logger.Warn("Invalid report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.TitleReport(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	filename := fmt.Sprintf("titles-report-%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	c.Header("Content-Disposition", `attachment; filename=`+filename)

	if format == "xlsx" {
		c.Header("Content-Type", xlsxContentType)
		err = export.WriteTitleReportXLSX(c.Writer, report)
	} else {
		c.Header("Content-Type", "text/csv")
		err = export.WriteTitleReportCSV(c.Writer, report)
	}
	if err != nil {
		logger.Error("Failed to stream report export", slog.String("error", err.Error()))
	}
}

// agingReport godoc
// @Summary Aging report
// @Description Distributes open titles of one nature into overdue buckets at a reference date
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Param nature query string true "RECEIVABLE or PAYABLE"
// @Param referenceDate query string false "Reference date (YYYY-MM-DD, default today)"
// @Success 200 {object} domain.AgingReport
// @Router /companies/{companyID}/reports/aging [get]
func (h *reportingHandler) agingReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	params := dto.AgingReportParams{Nature: domain.TitleNature(c.Query("nature"))}
	if v := c.Query("referenceDate"); v != "" {
		ref, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid referenceDate"})
			return
		}
		params.ReferenceDate = ref
	}

	report, err := h.reportingService.AgingReport(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// cashFlow godoc
// @Summary Cash flow projection
// @Description Day-by-day realized and projected tracks over a date range, optionally seeded from one bank account or consolidated across companies
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Param bankAccountID query string false "Seed opening balance from this account"
// @Param consolidated query bool false "Span all companies"
// @Success 200 {object} domain.CashFlowStatement
// @Router /companies/{companyID}/cashflow [get]
func (h *reportingHandler) cashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	params := dto.CashFlowParams{}
	start, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing startDate"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing endDate"})
		return
	}
	params.StartDate = start
	params.EndDate = end
	if v := c.Query("bankAccountID"); v != "" {
		params.BankAccountID = &v
	}
	params.Consolidated = c.Query("consolidated") == "true"

	statement, err := h.cashFlowService.Project(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, statement)
}

// titleReportParamsFromQuery parses the report filters off the query string.
func titleReportParamsFromQuery(c *gin.Context) (dto.TitleReportParams, error) {
	params := dto.TitleReportParams{Axis: domain.ReportDateAxis(c.Query("axis"))}

	if v := c.Query("nature"); v != "" {
		nature := domain.TitleNature(v)
		params.Nature = &nature
	}
	if v := c.Query("status"); v != "" {
		status := domain.TitleStatus(v)
		params.Status = &status
	}
	if v := c.Query("counterpartyID"); v != "" {
		params.CounterpartyID = &v
	}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, err
		}
		params.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return params, err
		}
		params.To = &to
	}
	return params, nil
}
