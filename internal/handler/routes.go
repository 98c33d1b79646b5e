package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, expenseHandler *ExpenseHandler, paymentHandler *PaymentHandler, exchangeHandler *ExchangeHandler, progressHandler *ProgressHandler, budgetHandler *BudgetHandler, itemHandler *BudgetItemHandler, dashboardHandler *DashboardHandler, exportHandler *ExportHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Worker payment routes
	payments := api.Group("/payments")
	payments.POST("", paymentHandler.CreatePayment)
	payments.GET("", paymentHandler.GetPayments)
	payments.PUT("/:id", paymentHandler.UpdatePayment)
	payments.DELETE("/:id", paymentHandler.DeletePayment)

	// Currency exchange routes
	exchanges := api.Group("/exchanges")
	exchanges.POST("", exchangeHandler.CreateExchange)
	exchanges.GET("", exchangeHandler.GetExchanges)
	exchanges.PUT("/:id", exchangeHandler.UpdateExchange)
	exchanges.DELETE("/:id", exchangeHandler.DeleteExchange)

	// Work progress routes
	progress := api.Group("/progress")
	progress.POST("", progressHandler.CreateProgress)
	progress.GET("", progressHandler.GetProgress)
	progress.PUT("/:id", progressHandler.UpdateProgress)
	progress.DELETE("/:id", progressHandler.DeleteProgress)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/summary", budgetHandler.GetBudgetSummary)
	budgets.POST("/:id/items", itemHandler.CreateItem)
	budgets.GET("/:id/items", itemHandler.GetItems)

	// Budget item routes
	items := api.Group("/budget-items")
	items.GET("/:id", itemHandler.GetItem)
	items.PUT("/:id", itemHandler.UpdateItem)
	items.DELETE("/:id", itemHandler.DeleteItem)
	items.PATCH("/:id/purchase", itemHandler.SetPurchased)
	items.PATCH("/:id/actual-value", itemHandler.SetActualValue)
	items.POST("/:id/image", itemHandler.UploadImage)
	items.GET("/:id/image", itemHandler.GetImage)
	items.DELETE("/:id/image", itemHandler.DeleteImage)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// Backup routes
	api.GET("/export", exportHandler.Export)
	api.POST("/import", exportHandler.Import)
}
