package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recati/comanda-app/controllers"
	"github.com/recati/comanda-app/middlewares"
	"github.com/recati/comanda-app/services"
	"github.com/recati/comanda-app/store"
)

// SetupRouter wires every HTTP route against the shared store. Writes go
// through the store's single-writer mutate path, so handlers never touch
// persistence directly.
func SetupRouter(st *store.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())

	limiter := middlewares.NewRateLimiter(50, 100)
	r.Use(limiter.RateLimit())

	catalog := services.NewCatalogService(st)
	codes := services.NewCodeService(st)
	orders := services.NewOrderService(st)
	payments := services.NewPaymentService(st)
	reports := services.NewReportService(st)

	productCtrl := controllers.NewProductController(catalog)
	addonCtrl := controllers.NewAddonController(catalog)
	codeCtrl := controllers.NewCodeController(codes)
	orderCtrl := controllers.NewOrderController(orders)
	itemCtrl := controllers.NewOrderItemController(orders)
	paymentCtrl := controllers.NewPaymentController(payments)
	reportCtrl := controllers.NewReportController(reports)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/ws", controllers.EventsHandler)

	products := r.Group("/products")
	{
		products.GET("", productCtrl.GetAllProducts)
		products.POST("", productCtrl.CreateProduct)
		products.GET("/top-sellers", productCtrl.TopSellers)
		products.GET("/:id", productCtrl.GetProductByID)
		products.PUT("/:id", productCtrl.UpdateProduct)
		products.DELETE("/:id", productCtrl.DeleteProduct)
		products.PATCH("/:id/stock", productCtrl.AdjustStock)
	}

	addons := r.Group("/addons")
	{
		addons.GET("", addonCtrl.GetAllAddons)
		addons.POST("", addonCtrl.CreateAddon)
		addons.GET("/:id", addonCtrl.GetAddonByID)
		addons.PUT("/:id", addonCtrl.UpdateAddon)
		addons.DELETE("/:id", addonCtrl.DeleteAddon)
	}

	comandaCodes := r.Group("/comanda-codes")
	{
		comandaCodes.GET("", codeCtrl.GetAllCodes)
		comandaCodes.POST("", codeCtrl.CreateCode)
		comandaCodes.GET("/panel", codeCtrl.CodePanel)
		comandaCodes.PATCH("/:id", codeCtrl.SetCodeActive)
		comandaCodes.POST("/:id/release", codeCtrl.ForceReleaseCode)
		comandaCodes.DELETE("/:id", codeCtrl.DeleteCode)
	}

	ordersGroup := r.Group("/orders")
	{
		ordersGroup.GET("", orderCtrl.GetAllOrders)
		ordersGroup.POST("/open", orderCtrl.OpenOrder)
		ordersGroup.GET("/history", orderCtrl.GetOrderHistory)
		ordersGroup.POST("/reset-active", orderCtrl.ResetActiveOrders)
		ordersGroup.GET("/:id", orderCtrl.GetOrderByID)
		ordersGroup.DELETE("/:id", orderCtrl.DeleteOrder)
		ordersGroup.PATCH("/:id/status", orderCtrl.UpdateOrderStatus)
		ordersGroup.POST("/:id/reset", orderCtrl.ResetOrder)
		ordersGroup.GET("/:id/receipt", orderCtrl.GetOrderReceipt)

		ordersGroup.POST("/:id/items", itemCtrl.AddItem)
		ordersGroup.PUT("/:id/items/:itemId", itemCtrl.UpdateItem)
		ordersGroup.DELETE("/:id/items/:itemId", itemCtrl.RemoveItem)
		ordersGroup.DELETE("/:id/items/:itemId/force", itemCtrl.ForceRemoveItem)
		ordersGroup.POST("/:id/items/:itemId/move", itemCtrl.MoveItem)
	}

	paymentsGroup := r.Group("/payments")
	{
		paymentsGroup.GET("", paymentCtrl.GetAllPayments)
		paymentsGroup.POST("", paymentCtrl.CreateManualPayment)
		paymentsGroup.POST("/terminal/start", paymentCtrl.StartTerminalPayment)
		paymentsGroup.PATCH("/terminal/:id/confirm", paymentCtrl.ConfirmTerminalPayment)
	}

	reportsGroup := r.Group("/reports")
	{
		reportsGroup.GET("/daily-closing", reportCtrl.GetDailyClosing)
		reportsGroup.GET("/daily-closing.csv", reportCtrl.GetDailyClosingCSV)
		reportsGroup.GET("/period-revenue", reportCtrl.GetPeriodRevenue)
		reportsGroup.GET("/period-revenue.csv", reportCtrl.GetPeriodRevenueCSV)
	}

	return r
}
