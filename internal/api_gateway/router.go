package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/corebank-ledger/internal/api_gateway/handler"
	"github.com/corebank-ledger/internal/api_gateway/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Account operations
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("/:id", accountHandler.GetByID)
			accounts.GET("/:id/ledger", accountHandler.GetLedger)
			accounts.GET("/:id/transactions", transactionHandler.GetByAccountID)
		}

		// Money-movement operations
		v1.POST("/transfers", transactionHandler.Transfer)
		v1.POST("/deposits", transactionHandler.Deposit)
		v1.POST("/withdrawals", transactionHandler.Withdraw)

		// Transaction lookup
		v1.GET("/transactions/:id", transactionHandler.GetByID)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
