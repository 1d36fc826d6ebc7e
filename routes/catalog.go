package routes

import (
	"github.com/gin-gonic/gin"

	catalogControllers "github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/controllers/catalog"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/middleware"
)

func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	r.GET("/api/colors", catalogControllers.ListColors(d.DB))

	// Carts are created by the storefront at checkout start, no auth needed.
	r.POST("/api/carts", catalogControllers.CreateCart(d.DB))
	r.GET("/api/cart/:id", catalogControllers.GetCart(d.DB))
	r.POST("/api/cart/:id/products", catalogControllers.AddProductToCart(d.DB))

	protected := r.Group("/api")
	protected.Use(middleware.ValidateToken(d.Cfg.JWTSecret))
	{
		protected.POST("/colors", catalogControllers.CreateColor(d.DB))
		protected.POST("/customizations", catalogControllers.CreateCustomization(d.DB))
	}
}
