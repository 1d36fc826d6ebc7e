package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/controllers/product"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/middleware"
)

func SetupProductRoutes(r *gin.Engine, d Deps) {
	// Public catalog reads.
	r.GET("/api/products", productcontroller.GetProducts(d.DB))
	r.GET("/api/product/:id", productcontroller.GetProductByID(d.DB))

	// Writes require a JWT.
	protected := r.Group("/api")
	protected.Use(middleware.ValidateToken(d.Cfg.JWTSecret))
	{
		protected.POST("/products", productcontroller.CreateProduct(d.DB, d.Store))
		protected.PUT("/product/:id", productcontroller.UpdateProduct(d.DB))
		protected.PATCH("/product/:id", productcontroller.UpdateProduct(d.DB))
		protected.DELETE("/product/:id", productcontroller.DeleteProduct(d.DB))

		protected.POST("/image", productcontroller.UploadImage(d.DB, d.Store))
		protected.DELETE("/image/:id", productcontroller.DeleteImage(d.DB))
	}
}
