package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/auth"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/config"
	orderControllers "github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/controllers/order"
	productcontroller "github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/controllers/product"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/services/mailer"
)

// Deps bundles what the route groups need. Built once in main.
type Deps struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Gateway orderControllers.PaymentGateway
	Store   productcontroller.Uploader
	Mail    mailer.Mailer
}

// SetupRoutes is the single entry-point that wires every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/api/token", auth.TokenHandler(d.Cfg))

	SetupProductRoutes(r, d)
	SetupOrderRoutes(r, d)
	SetupPaymentRoutes(r, d)
	SetupCatalogRoutes(r, d)
}
