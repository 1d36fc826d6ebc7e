package productcontroller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
)

// UploadImage attaches a new image to an existing product. Multipart fields:
// "id_produto" and the "imagem" file.
func UploadImage(db *gorm.DB, store Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		produtoID := c.PostForm("id_produto")
		if produtoID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id_produto is required"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", produtoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
			return
		}

		file, err := c.FormFile("imagem")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "imagem file is required"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
			return
		}

		url, err := store.Upload(c.Request.Context(), data, file.Filename, file.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
			return
		}

		image := models.ProductImage{ProdutoID: product.ID, URL: url}
		if err := db.Create(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
			return
		}
		c.JSON(http.StatusCreated, image)
	}
}

// DeleteImage removes an image row. The stored object is left in the bucket;
// keys are random so there is nothing to collide with.
func DeleteImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image ID is required"})
			return
		}

		res := db.Delete(&models.ProductImage{}, "id = ?", id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
