package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/azwdevops/pesa-plan-sub001/internal/config"
	"github.com/azwdevops/pesa-plan-sub001/internal/handler"
	"github.com/azwdevops/pesa-plan-sub001/internal/ledger"
	"github.com/azwdevops/pesa-plan-sub001/internal/middleware"
)

// SetupRouter configures the Gin engine and the API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	service := ledger.NewService(db)

	// ====== API ======
	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))

	protected.GET("/me", handler.GetMe)

	accountsHandler := handler.NewAccountsHandler(service)
	protected.GET("/accounts/parent-groups", accountsHandler.ListParentGroups)
	protected.POST("/accounts/parent-groups", accountsHandler.CreateParentGroup)
	protected.PUT("/accounts/parent-groups/:id", accountsHandler.UpdateParentGroup)
	protected.DELETE("/accounts/parent-groups/:id", accountsHandler.DeleteParentGroup)

	protected.GET("/accounts/groups", accountsHandler.ListLedgerGroups)
	protected.POST("/accounts/groups", accountsHandler.CreateLedgerGroup)
	protected.PUT("/accounts/groups/:id", accountsHandler.UpdateLedgerGroup)
	protected.DELETE("/accounts/groups/:id", accountsHandler.DeleteLedgerGroup)

	protected.GET("/accounts/spending-types", accountsHandler.ListSpendingTypes)
	protected.POST("/accounts/spending-types", accountsHandler.CreateSpendingType)

	protected.GET("/accounts", accountsHandler.ListLedgers)
	protected.POST("/accounts", accountsHandler.CreateLedger)
	protected.GET("/accounts/:id", accountsHandler.GetLedger)
	protected.PUT("/accounts/:id", accountsHandler.UpdateLedger)
	protected.DELETE("/accounts/:id", accountsHandler.DeleteLedger)

	txHandler := handler.NewTransactionHandler(service)
	protected.POST("/transactions", txHandler.CreateTransaction)
	protected.GET("/transactions", txHandler.ListTransactions)
	protected.GET("/transactions/:id", txHandler.GetTransaction)
	protected.POST("/transactions/:id/reverse", txHandler.ReverseTransaction)

	reportsHandler := handler.NewReportsHandler(service)
	protected.GET("/reports/trial-balance", reportsHandler.GetTrialBalance)
	protected.GET("/reports/trial-balance/xlsx", reportsHandler.ExportTrialBalanceXLSX)
	protected.GET("/reports/ledger", reportsHandler.GetLedgerStatement)

	return r
}
