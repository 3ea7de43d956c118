package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zeppelin-cash/internal/api_gateway/handler"
	"github.com/zeppelin-cash/internal/api_gateway/middleware"
	"github.com/zeppelin-cash/internal/platform/metrics"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	m *metrics.Metrics,
	bookHandler *handler.BookHandler,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))

	// API v1 endpoints, one book per user
	v1 := r.Group("/api/v1")
	books := v1.Group("/books/:user_id")
	{
		books.POST("", bookHandler.Open)
		books.GET("/statements", bookHandler.FinancialStatement)
		books.GET("/balance-sheet", bookHandler.BalanceSheet)

		// Account operations
		accounts := books.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("", accountHandler.List)
			accounts.GET("/:account_id", accountHandler.GetByID)
		}

		// Transaction operations
		transactions := books.Group("/transactions")
		{
			transactions.POST("", transactionHandler.Create)
			transactions.POST("/async", transactionHandler.CreateAsync)
			transactions.GET("", transactionHandler.List)
			transactions.GET("/:transaction_id", transactionHandler.GetArchived)
		}

		books.GET("/archive", transactionHandler.ListArchived)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))
}
