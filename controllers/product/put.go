package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
)

type UpdateProductRequest struct {
	Preco       *float64 `json:"preco"`
	Quantidade  *int64   `json:"quantidade"`
	Categoria   *string  `json:"categoria"`
	Material    *string  `json:"material"`
	CorPadrao   *string  `json:"cor_padrao"`
	Titulo      *string  `json:"titulo"`
	Descricao   *string  `json:"descricao"`
	Altura      *float64 `json:"altura"`
	Comprimento *float64 `json:"comprimento"`
	Largura     *float64 `json:"largura"`
}

// UpdateProduct applies a partial update and re-validates the result.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var product models.Product
		if err := db.Preload("Imagens").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
			return
		}

		if req.Preco != nil {
			product.Preco = *req.Preco
		}
		if req.Quantidade != nil {
			product.Quantidade = *req.Quantidade
		}
		if req.Categoria != nil {
			product.Categoria = *req.Categoria
		}
		if req.Material != nil {
			product.Material = *req.Material
		}
		if req.CorPadrao != nil {
			product.CorPadrao = *req.CorPadrao
		}
		if req.Titulo != nil {
			product.Titulo = *req.Titulo
		}
		if req.Descricao != nil {
			product.Descricao = *req.Descricao
		}
		if req.Altura != nil {
			product.Altura = req.Altura
		}
		if req.Comprimento != nil {
			product.Comprimento = req.Comprimento
		}
		if req.Largura != nil {
			product.Largura = req.Largura
		}

		if err := product.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
