package productcontroller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
)

// Uploader is what the product handlers need from the storage gateway.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// GetProducts lists products with the storefront's filters: category,
// material and default color, free text search, and price/stock ordering.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Imagens")

		if categoria := c.Query("categoria"); categoria != "" {
			query = query.Where("categoria = ?", categoria)
		}
		if material := c.Query("material"); material != "" {
			query = query.Where("material = ?", material)
		}
		if cor := c.Query("cor_padrao"); cor != "" {
			query = query.Where("cor_padrao = ?", cor)
		}

		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where(
				"titulo LIKE ? OR descricao LIKE ? OR material LIKE ? OR categoria LIKE ? OR cor_padrao LIKE ?",
				like, like, like, like, like,
			)
		}

		sortBy := c.DefaultQuery("sort_by", "preco")
		if sortBy != "preco" && sortBy != "quantidade" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort_by"})
			return
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "asc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "asc"
		}

		var products []models.Product
		if err := query.Order(sortBy + " " + sortOrder).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetProductByID returns a single product with its images.
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Imagens").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
