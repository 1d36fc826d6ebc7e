package productcontroller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
)

// CreateProduct creates a product from a multipart form, uploading an
// optional "imagem" file to object storage. The upload happens inside the
// transaction window: if storage fails, the freshly created product is rolled
// back so no orphan row survives.
func CreateProduct(db *gorm.DB, store Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		precoStr := c.PostForm("preco")
		categoria := c.PostForm("categoria")
		if precoStr == "" || categoria == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "preco and categoria are required"})
			return
		}

		preco, err := strconv.ParseFloat(precoStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preco"})
			return
		}

		var quantidade int64
		if q := c.PostForm("quantidade"); q != "" {
			quantidade, err = strconv.ParseInt(q, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantidade"})
				return
			}
		}

		parseDim := func(field string) (*float64, error) {
			v := c.PostForm(field)
			if v == "" {
				return nil, nil
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.New("invalid " + field)
			}
			return &f, nil
		}

		product := models.Product{
			Preco:      preco,
			Quantidade: quantidade,
			Categoria:  categoria,
			Material:   c.PostForm("material"),
			CorPadrao:  c.PostForm("cor_padrao"),
			Titulo:     c.PostForm("titulo"),
			Descricao:  c.PostForm("descricao"),
		}
		for field, dst := range map[string]**float64{
			"altura":      &product.Altura,
			"comprimento": &product.Comprimento,
			"largura":     &product.Largura,
		} {
			dim, err := parseDim(field)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			*dst = dim
		}

		if err := product.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		tx := db.Begin()
		if tx.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start transaction"})
			return
		}

		if err := tx.Create(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
			return
		}

		if file, err := c.FormFile("imagem"); err == nil {
			src, err := file.Open()
			if err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
				return
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
				return
			}

			url, err := store.Upload(c.Request.Context(), data, file.Filename, file.Header.Get("Content-Type"))
			if err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
				return
			}

			image := models.ProductImage{ProdutoID: product.ID, URL: url}
			if err := tx.Create(&image).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
				return
			}
			product.Imagens = append(product.Imagens, image)
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit transaction"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
