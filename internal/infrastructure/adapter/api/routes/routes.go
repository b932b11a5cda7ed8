package routes

import (
	coreport "github.com/cashfolio/cashfolio/internal/domain/port/core"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/api/handler"
	"github.com/cashfolio/cashfolio/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	transactionHandler *handler.TransactionHandler,
	holderHandler *handler.HolderHandler,
	budgetHandler *handler.BudgetHandler,
	invoiceHandler *handler.InvoiceHandler,
) {
	userRoutes := router.Group("/user")
	{
		userRoutes.POST("/:userId/account", holderHandler.CreateAccount)
		userRoutes.GET("/:userId/account/:id", holderHandler.GetAccount)
		userRoutes.POST("/:userId/card", holderHandler.CreateCard)
		userRoutes.GET("/:userId/card/:id", holderHandler.GetCard)

		userRoutes.POST("/:userId/transaction", transactionHandler.Create)
		userRoutes.PUT("/:userId/transaction/:id", transactionHandler.Update)
		userRoutes.DELETE("/:userId/transaction/:id", transactionHandler.Delete)

		userRoutes.POST("/:userId/budget", budgetHandler.Create)
		userRoutes.GET("/:userId/budget/:id", budgetHandler.Get)

		userRoutes.POST("/:userId/invoice/:id/settle", invoiceHandler.Settle)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}
