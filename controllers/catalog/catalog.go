package catalogControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
)

type CreateCartRequest struct {
	Subtotal float64 `json:"subtotal" binding:"gte=0"`
}

type AddProductToCartRequest struct {
	ProdutoID uint `json:"id_produto" binding:"required"`
}

type CreateColorRequest struct {
	Nome string `json:"nome" binding:"required"`
	RGB  string `json:"rgb"`
}

type CreateCustomizationRequest struct {
	ProdutoID *uint `json:"id_produto" binding:"required"`
	CorID     *uint `json:"id_cor" binding:"required"`
}

// CreateCart opens a cart snapshot for a checkout.
func CreateCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cart := models.Cart{Subtotal: req.Subtotal}
		if err := db.Create(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create cart"})
			return
		}
		c.JSON(http.StatusCreated, cart)
	}
}

// GetCart returns a cart by id.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cart models.Cart
		if err := db.First(&cart, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// AddProductToCart creates the product/cart join row. Both ends must exist.
func AddProductToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddProductToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var cart models.Cart
		if err := db.First(&cart, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", req.ProdutoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
			return
		}

		link := models.ProductCart{ProdutoID: product.ID, CarrinhoID: cart.ID}
		if err := db.Create(&link).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add product to cart"})
			return
		}
		c.JSON(http.StatusCreated, link)
	}
}

// ListColors returns the customization palette.
func ListColors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var colors []models.Color
		if err := db.Find(&colors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch colors"})
			return
		}
		c.JSON(http.StatusOK, colors)
	}
}

// CreateColor adds a color.
func CreateColor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateColorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		color := models.Color{Nome: req.Nome, RGB: req.RGB}
		if err := db.Create(&color).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create color"})
			return
		}
		c.JSON(http.StatusCreated, color)
	}
}

// CreateCustomization links a product and a color. Both ids are required and
// both rows must exist, otherwise the request fails with a referential error.
func CreateCustomization(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCustomizationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id_produto and id_cor are required"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", *req.ProdutoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
			return
		}

		var color models.Color
		if err := db.First(&color, "id = ?", *req.CorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "color not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch color"})
			return
		}

		custom := models.Customization{ProdutoID: product.ID, CorID: color.ID}
		if err := db.Create(&custom).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customization"})
			return
		}
		c.JSON(http.StatusCreated, custom)
	}
}
