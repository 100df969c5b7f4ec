package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/dto"
	"github.com/finledger/fin_titles_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// registryHandler handles the counterparty, category and bank account
// registries.
type registryHandler struct {
	counterpartyService portssvc.CounterpartySvcFacade
	categoryService     portssvc.CategorySvcFacade
	bankAccountService  portssvc.BankAccountSvcFacade
}

func newRegistryHandler(
	counterpartyService portssvc.CounterpartySvcFacade,
	categoryService portssvc.CategorySvcFacade,
	bankAccountService portssvc.BankAccountSvcFacade,
) *registryHandler {
	return &registryHandler{
		counterpartyService: counterpartyService,
		categoryService:     categoryService,
		bankAccountService:  bankAccountService,
	}
}

// createCounterparty godoc
// @Summary Register a counterparty
// @Tags registry
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param counterparty body dto.CreateCounterpartyRequest true "Counterparty"
// @Success 201 {object} dto.CounterpartyResponse
// @Failure 409 {object} map[string]string "Tax ID already registered"
// @Router /companies/{companyID}/counterparties [post]
func (h *registryHandler) createCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCounterparty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cp, err := h.counterpartyService.CreateCounterparty(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Counterparty created", slog.String("counterparty_id", cp.CounterpartyID))
	c.JSON(http.StatusCreated, dto.ToCounterpartyResponse(cp))
}

// getCounterparty godoc
// @Summary Get one counterparty
// @Tags registry
// @Produce json
// @Param companyID path string true "Company ID"
// @Param counterpartyID path string true "Counterparty ID"
// @Success 200 {object} dto.CounterpartyResponse
// @Router /companies/{companyID}/counterparties/{counterpartyID} [get]
func (h *registryHandler) getCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	counterpartyID := c.Param("counterpartyID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cp, err := h.counterpartyService.GetCounterpartyByID(c.Request.Context(), companyID, counterpartyID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(cp))
}

// listCounterparties godoc
// @Summary List counterparties
// @Tags registry
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {array} dto.CounterpartyResponse
// @Router /companies/{companyID}/counterparties [get]
func (h *registryHandler) listCounterparties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	counterparties, err := h.counterpartyService.ListCounterparties(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	out := make([]dto.CounterpartyResponse, len(counterparties))
	for i := range counterparties {
		out[i] = dto.ToCounterpartyResponse(&counterparties[i])
	}
	c.JSON(http.StatusOK, out)
}

// createCategory godoc
// @Summary Register a category
// @Tags registry
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param category body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 409 {object} map[string]string "Code already registered"
// @Router /companies/{companyID}/categories [post]
func (h *registryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cat, err := h.categoryService.CreateCategory(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Category created", slog.String("category_id", cat.CategoryID))
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(cat))
}

// getCategory godoc
// @Summary Get one category
// @Tags registry
// @Produce json
// @Param companyID path string true "Company ID"
// @Param categoryID path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Router /companies/{companyID}/categories/{categoryID} [get]
func (h *registryHandler) getCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	categoryID := c.Param("categoryID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cat, err := h.categoryService.GetCategoryByID(c.Request.Context(), companyID, categoryID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// listCategories godoc
// @Summary List categories
// @Tags registry
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {array} dto.CategoryResponse
// @Router /companies/{companyID}/categories [get]
func (h *registryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	out := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		out[i] = dto.ToCategoryResponse(&categories[i])
	}
	c.JSON(http.StatusOK, out)
}

// createBankAccount godoc
// @Summary Register a bank account
// @Description Creates the account; a nonzero opening balance is recorded as the first movement
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param account body dto.CreateBankAccountRequest true "Bank account"
// @Success 201 {object} dto.BankAccountResponse
// @Router /companies/{companyID}/bank-accounts [post]
func (h *registryHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	logger.Info("Bank account created", slog.String("bank_account_id", account.BankAccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// getBankAccount godoc
// @Summary Get one bank account
// @Tags bank-accounts
// @Produce json
// @Param companyID path string true "Company ID"
// @Param bankAccountID path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Router /companies/{companyID}/bank-accounts/{bankAccountID} [get]
func (h *registryHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	bankAccountID := c.Param("bankAccountID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	account, err := h.bankAccountService.GetBankAccountByID(c.Request.Context(), companyID, bankAccountID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags bank-accounts
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {array} dto.BankAccountResponse
// @Router /companies/{companyID}/bank-accounts [get]
func (h *registryHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	accounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	out := make([]dto.BankAccountResponse, len(accounts))
	for i := range accounts {
		out[i] = dto.ToBankAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, out)
}

// listBankMovements godoc
// @Summary List account movements
// @Description Returns the account ledger, newest first, with cursor pagination
// @Tags bank-accounts
// @Produce json
// @Param companyID path string true "Company ID"
// @Param bankAccountID path string true "Bank account ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListMovementsResponse
// @Router /companies/{companyID}/bank-accounts/{bankAccountID}/movements [get]
func (h *registryHandler) listBankMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	bankAccountID := c.Param("bankAccountID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if v := c.Query("nextToken"); v != "" {
		nextToken = &v
	}

	movements, token, err := h.bankAccountService.ListMovements(c.Request.Context(), companyID, bankAccountID, limit, nextToken, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.ToBankMovementResponses(movements),
		NextToken: token,
	})
}
