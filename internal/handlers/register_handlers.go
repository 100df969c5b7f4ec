package handlers

import (
	"log/slog"

	"github.com/finledger/fin_titles_app/cmd/docs"
	portssvc "github.com/finledger/fin_titles_app/internal/core/ports/services"
	"github.com/finledger/fin_titles_app/internal/middleware"
	"github.com/finledger/fin_titles_app/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		slog.Warn("Invalid rate limit format, falling back to 100-M", slog.String("value", cfg.RateLimit))
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	v1.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	registerCompanyRoutes(v1, services.Company)
	registerCompanyScopedRoutes(v1, services)
}

func registerCompanyRoutes(v1 *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	companies := v1.Group("/companies")
	companies.POST("", h.createCompany)
	companies.GET("", h.listCompanies)
	companies.GET("/:companyID", h.getCompany)
	companies.PUT("/:companyID", h.updateCompany)
	companies.POST("/:companyID/members", h.addMember)
}

func registerCompanyScopedRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	titleH := newTitleHandler(services.Title)
	settlementH := newSettlementHandler(services.Settlement)
	registryH := newRegistryHandler(services.Counterparty, services.Category, services.BankAccount)
	reportingH := newReportingHandler(services.Reporting, services.CashFlow)

	company := v1.Group("/companies/:companyID")

	titles := company.Group("/titles")
	titles.POST("", titleH.createTitle)
	titles.GET("", titleH.listTitles)
	titles.POST("/installments", titleH.generateInstallments)
	titles.GET("/:titleID", titleH.getTitle)
	titles.PUT("/:titleID", titleH.updateTitle)
	titles.DELETE("/:titleID", titleH.deleteTitle)
	titles.POST("/:titleID/cancel", titleH.cancelTitle)
	titles.POST("/:titleID/settle", settlementH.settleTitle)
	titles.GET("/:titleID/settlements", settlementH.listSettlements)

	company.POST("/settlements/:settlementID/reverse", settlementH.reverseSettlement)

	counterparties := company.Group("/counterparties")
	counterparties.POST("", registryH.createCounterparty)
	counterparties.GET("", registryH.listCounterparties)
	counterparties.GET("/:counterpartyID", registryH.getCounterparty)

	categories := company.Group("/categories")
	categories.POST("", registryH.createCategory)
	categories.GET("", registryH.listCategories)
	categories.GET("/:categoryID", registryH.getCategory)

	bankAccounts := company.Group("/bank-accounts")
	bankAccounts.POST("", registryH.createBankAccount)
	bankAccounts.GET("", registryH.listBankAccounts)
	bankAccounts.GET("/:bankAccountID", registryH.getBankAccount)
	bankAccounts.GET("/:bankAccountID/movements", registryH.listBankMovements)

	reports := company.Group("/reports")
	reports.GET("/titles", reportingH.titleReport)
	reports.GET("/titles/export", reportingH.exportTitleReport)
	reports.GET("/aging", reportingH.agingReport)

	company.GET("/cashflow", reportingH.cashFlow)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
