package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/finledger/fin_titles_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles tenant and membership management.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(companyService portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: companyService}
}

// createCompany godoc
// @Summary Create a company
// @Description Registers a tenant; the creator becomes its first ADMIN member
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company"
// @Success 201 {object} dto.CompanyResponse
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// getCompany godoc
// @Summary Get one company
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List the caller's companies
// @Tags companies
// @Produce json
// @Success 200 {array} dto.CompanyResponse
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	companies, err := h.companyService.ListUserCompanies(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	out := make([]dto.CompanyResponse, len(companies))
	for i := range companies {
		out[i] = dto.ToCompanyResponse(&companies[i])
	}
	c.JSON(http.StatusOK, out)
}

// updateCompany godoc
// @Summary Update a company
// @Tags companies
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param company body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} dto.CompanyResponse
// @Router /companies/{companyID} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Company updated", slog.String("company_id", companyID))
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// addMember godoc
// @Summary Add a member to a company
// @Description Grants a user a role in the company; requires ADMIN
// @Tags companies
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param member body dto.AddMemberRequest true "Membership"
// @Success 204 "Member added"
// @Failure 409 {object} map[string]string "Already a member"
// @Router /companies/{companyID}/members [post]
func (h *companyHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.companyService.AddMember(c.Request.Context(), companyID, req, userID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Member added to company",
		slog.String("company_id", companyID),
		slog.String("member_user_id", req.UserID))
	c.Status(http.StatusNoContent)
}
