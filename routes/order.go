package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/controllers/order"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/middleware"
)

func SetupOrderRoutes(r *gin.Engine, d Deps) {
	orders := r.Group("/api")
	orders.Use(middleware.ValidateToken(d.Cfg.JWTSecret))
	{
		orders.GET("/orders", orderControllers.GetAllOrdersHandler(d.DB))
		orders.GET("/order/:orderID", orderControllers.GetOrderByIDHandler(d.DB))
		orders.PUT("/order/:orderID", orderControllers.UpdateOrderHandler(d.DB, d.Mail))
		orders.PATCH("/order/:orderID", orderControllers.UpdateOrderHandler(d.DB, d.Mail))
		orders.DELETE("/order/:orderID", orderControllers.DeleteOrderHandler(d.DB))

		// Real-time order updates for the admin dashboard.
		orders.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
	}

	// Spreadsheet export sits behind the admin key.
	r.GET("/api/orders/export",
		middleware.ValidateAPIKey(d.Cfg.AdminAPIKey),
		orderControllers.ExportOrdersToExcel(d.DB),
	)
}
