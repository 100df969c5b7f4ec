package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/finledger/fin_titles_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settlementHandler handles HTTP requests for baixa and estorno.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(settlementService portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: settlementService}
}

// settleTitle godoc
// @Summary Settle a title (baixa)
// @Description Applies a partial or full settlement; with a bank account the cash total moves through it in the same transaction
// @Tags settlements
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param titleID path string true "Title ID"
// @Param settlement body dto.SettleTitleRequest true "Settlement"
// @Success 200 {object} dto.SettleResultResponse
// @Failure 422 {object} map[string]string "Amount exceeds balance or title state forbids settlement"
// @Router /companies/{companyID}/titles/{titleID}/settle [post]
func (h *settlementHandler) settleTitle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	titleID := c.Param("titleID")

	var req dto.SettleTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for settleTitle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	title, settlement, err := h.settlementService.SettleTitle(c.Request.Context(), companyID, titleID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Title settled",
		slog.String("title_id", titleID),
		slog.String("settlement_id", settlement.SettlementID))
	c.JSON(http.StatusOK, dto.SettleResultResponse{
		Title:      dto.ToTitleResponse(title, time.Now().UTC()),
		Settlement: dto.ToSettlementResponse(settlement),
	})
}

// reverseSettlement godoc
// @Summary Reverse a settlement (estorno)
// @Description Writes a compensating reversal entry, restores the title balance and undoes the bank movement; nothing is deleted
// @Tags settlements
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param settlementID path string true "Settlement ID"
// @Param reversal body dto.ReverseSettlementRequest true "Justification"
// @Success 200 {object} dto.SettleResultResponse
// @Failure 422 {object} map[string]string "Settlement already reversed or is itself a reversal"
// @Router /companies/{companyID}/settlements/{settlementID}/reverse [post]
func (h *settlementHandler) reverseSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	settlementID := c.Param("settlementID")

	var req dto.ReverseSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reverseSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	title, reversal, err := h.settlementService.ReverseSettlement(c.Request.Context(), companyID, settlementID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Settlement reversed",
		slog.String("settlement_id", settlementID),
		slog.String("reversal_id", reversal.SettlementID))
	c.JSON(http.StatusOK, dto.SettleResultResponse{
		Title:      dto.ToTitleResponse(title, time.Now().UTC()),
		Settlement: dto.ToSettlementResponse(reversal),
	})
}

// listSettlements godoc
// @Summary List the settlement history of a title
// @Description Returns every settlement of the title including reversed and reversal entries, ordered by date
// @Tags settlements
// @Produce json
// @Param companyID path string true "Company ID"
// @Param titleID path string true "Title ID"
// @Success 200 {array} dto.SettlementResponse
// @Failure 404 {object} map[string]string "Title not found"
// @Router /companies/{companyID}/titles/{titleID}/settlements [get]
func (h *settlementHandler) listSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	titleID := c.Param("titleID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	settlements, err := h.settlementService.ListSettlementsByTitle(c.Request.Context(), companyID, titleID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponses(settlements))
}
