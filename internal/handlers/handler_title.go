package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/finledger/fin_titles_app/internal/core/domain"
	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/finledger/fin_titles_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// titleHandler handles HTTP requests for the title lifecycle.
type titleHandler struct {
	titleService portssvc.TitleSvcFacade
}

func newTitleHandler(titleService portssvc.TitleSvcFacade) *titleHandler {
	return &titleHandler{titleService: titleService}
}

// createTitle godoc
// @Summary Create a receivable or payable title
// @Description Registers a new title for the company; total must reconcile with principal + additions - discounts
// @Tags titles
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param title body dto.CreateTitleRequest true "Title to create"
// @Success 201 {object} dto.TitleResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /companies/{companyID}/titles [post]
func (h *titleHandler) createTitle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTitle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	title, err := h.titleService.CreateTitle(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Title created", slog.String("title_id", title.TitleID))
	c.JSON(http.StatusCreated, dto.ToTitleResponse(title, time.Now().UTC()))
}

// listTitles godoc
// @Summary List titles
// @Description Lists company titles with filters and cursor pagination; open titles past due are presented as OVERDUE
// @Tags titles
// @Produce json
// @Param companyID path string true "Company ID"
// @Param nature query string false "RECEIVABLE or PAYABLE"
// @Param status query string false "PENDING, PARTIAL, SETTLED, CANCELLED or OVERDUE"
// @Param counterpartyID query string false "Counterparty filter"
// @Param from query string false "Due date range start (YYYY-MM-DD)"
// @Param to query string false "Due date range end (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListTitlesResponse
// @Router /companies/{companyID}/titles [get]
func (h *titleHandler) listTitles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	params, err := listTitleParamsFromQuery(c)
	if err != nil {
		logger.Warn("Invalid title list query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	titles, nextToken, err := h.titleService.ListTitles(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListTitlesResponse{
		Titles:    dto.ToTitleResponses(titles, time.Now().UTC()),
		NextToken: nextToken,
	})
}

// getTitle godoc
// @Summary Get one title
// @Tags titles
// @Produce json
// @Param companyID path string true "Company ID"
// @Param titleID path string true "Title ID"
// @Success 200 {object} dto.TitleResponse
// @Failure 404 {object} map[string]string "Title not found"
// @Router /companies/{companyID}/titles/{titleID} [get]
func (h *titleHandler) getTitle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	titleID := c.Param("titleID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	title, err := h.titleService.GetTitleByID(c.Request.Context(), companyID, titleID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTitleResponse(title, time.Now().UTC()))
}

// updateTitle godoc
// @Summary Update a title
// @Description Patches structural fields; rejected once the title has settlement activity
// @Tags titles
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param titleID path string true "Title ID"
// @Param title body dto.UpdateTitleRequest true "Fields to update"
// @Success 200 {object} dto.TitleResponse
// @Failure 422 {object} map[string]string "Title state forbids the update"
// @Router /companies/{companyID}/titles/{titleID} [put]
func (h *titleHandler) updateTitle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	titleID := c.Param("titleID")

	var req dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateTitle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	title, err := h.titleService.UpdateTitle(c.Request.Context(), companyID, titleID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Title updated", slog.String("title_id", titleID))
	c.JSON(http.StatusOK, dto.ToTitleResponse(title, time.Now().UTC()))
}

// cancelTitle godoc
// @Summary Cancel a title
// @Description Cancels an open title; a justification of at least 10 characters is mandatory and audited
// @Tags titles
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param titleID path string true "Title ID"
// @Param cancellation body dto.CancelTitleRequest true "Justification"
// @Success 200 {object} dto.TitleResponse
// @Failure 422 {object} map[string]string "Title state forbids cancellation"
// @Router /companies/{companyID}/titles/{titleID}/cancel [post]
func (h *titleHandler) cancelTitle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	titleID := c.Param("titleID")

	var req dto.CancelTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for cancelTitle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	title, err := h.titleService.CancelTitle(c.Request.Context(), companyID, titleID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Title cancelled", slog.String("title_id", titleID))
	c.JSON(http.StatusOK, dto.ToTitleResponse(title, time.Now().UTC()))
}

// deleteTitle godoc
// @Summary Soft delete a title
// @Tags titles
// @Produce json
// @Param companyID path string true "Company ID"
// @Param titleID path string true "Title ID"
// @Success 204 "Deleted"
// @Failure 422 {object} map[string]string "Title state forbids deletion"
// @Router /companies/{companyID}/titles/{titleID} [delete]
func (h *titleHandler) deleteTitle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	titleID := c.Param("titleID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.titleService.SoftDeleteTitle(c.Request.Context(), companyID, titleID, userID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Title soft deleted", slog.String("title_id", titleID))
	c.Status(http.StatusNoContent)
}

// generateInstallments godoc
// @Summary Generate installment titles
// @Description Splits one obligation into n titles; cent residue goes to the last installment and the batch persists atomically
// @Tags titles
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param installments body dto.GenerateInstallmentsRequest true "Installment plan"
// @Success 201 {object} dto.ListTitlesResponse
// @Router /companies/{companyID}/titles/installments [post]
func (h *titleHandler) generateInstallments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.GenerateInstallmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for generateInstallments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	titles, err := h.titleService.GenerateInstallments(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Installments generated", slog.Int("count", len(titles)))
	c.JSON(http.StatusCreated, dto.ListTitlesResponse{Titles: dto.ToTitleResponses(titles, time.Now().UTC())})
}

// listTitleParamsFromQuery parses the list filters off the query string.
func listTitleParamsFromQuery(c *gin.Context) (dto.ListTitlesParams, error) {
	params := dto.ListTitlesParams{}

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
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return params, err
		}
		params.Limit = limit
	}
	if v := c.Query("nextToken"); v != "" {
		params.NextToken = &v
	}
	return params, nil
}
