package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/controllers/order"
)

func SetupPaymentRoutes(r *gin.Engine, d Deps) {
	payment := r.Group("/api/pagamento")
	{
		// Checkout entry point.
		payment.POST("/criar", orderControllers.CreateOrderHandler(d.DB, d.Gateway, d.Cfg))

		// Gateway-facing endpoints.
		payment.POST("/webhook", orderControllers.WebhookHandler(d.DB, d.Gateway, d.Mail))
		payment.GET("/public-key", orderControllers.PublicKeyHandler(d.Gateway))
	}
}
