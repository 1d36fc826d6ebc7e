package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/services/mailer"
)

type UpdateOrderRequest struct {
	NomeUsuario     *string `json:"nome_usuario"`
	EmailUsuario    *string `json:"email_usuario"`
	CEP             *string `json:"cep"`
	Bairro          *string `json:"bairro"`
	Cidade          *string `json:"cidade"`
	Estado          *string `json:"estado"`
	Numero          *string `json:"numero"`
	Quadra          *string `json:"quadra"`
	MetodoPagamento *string `json:"metodo_pagamento"`
	Status          *string `json:"status"`
}

// GetAllOrdersHandler lists orders, newest first, with optional status and
// payment method filters.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{})

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if metodo := c.Query("metodo_pagamento"); metodo != "" {
			query = query.Where("metodo_pagamento = ?", metodo)
		}

		sortBy := c.DefaultQuery("sort_by", "created_at")
		switch sortBy {
		case "valor_total", "created_at", "updated_at":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort_by"})
			return
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		var orders []models.Order
		if err := query.Order(sortBy + " " + sortOrder).Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderByIDHandler returns one order by numeric id or external reference.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		// Numeric params hit the primary key, anything else is treated as an
		// external reference. Postgres rejects comparing id to arbitrary text.
		query := db.Where("external_reference = ?", id)
		if n, err := strconv.ParseUint(id, 10, 64); err == nil {
			query = db.Where("id = ?", n)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// UpdateOrderHandler applies a partial update. Status changes must follow the
// transition graph; when one lands, the buyer gets a best-effort email, same
// as the webhook path.
func UpdateOrderHandler(db *gorm.DB, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var newStatus models.OrderStatus
		if req.Status != nil {
			parsed, ok := models.ParseOrderStatus(*req.Status)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
				return
			}
			newStatus = parsed
		}

		var order models.Order
		statusChanged := false
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
				return err
			}

			updates := map[string]interface{}{}
			setIf := func(col string, v *string) {
				if v != nil {
					updates[col] = *v
				}
			}
			setIf("nome_usuario", req.NomeUsuario)
			setIf("email_usuario", req.EmailUsuario)
			setIf("cep", req.CEP)
			setIf("bairro", req.Bairro)
			setIf("cidade", req.Cidade)
			setIf("estado", req.Estado)
			setIf("numero", req.Numero)
			setIf("quadra", req.Quadra)
			setIf("metodo_pagamento", req.MetodoPagamento)

			if req.Status != nil && newStatus != order.Status {
				if !order.Status.CanTransition(newStatus) {
					return errInvalidTransition
				}
				updates["status"] = newStatus
				statusChanged = true
			}

			if len(updates) == 0 {
				return nil
			}

			// Same optimistic guard as the webhook: the write only lands if
			// the status is still the one we read.
			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", order.ID, order.Status).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errConcurrentUpdate
			}
			if statusChanged {
				order.Status = newStatus
			}
			return nil
		})
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case errors.Is(err, errInvalidTransition):
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status transition"})
			case errors.Is(err, errConcurrentUpdate):
				c.JSON(http.StatusConflict, gin.H{"error": "order was updated concurrently, retry"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		if statusChanged {
			notifyStatusChange(mail, order)
			broadcastOrderUpdate(order)
		}
		c.JSON(http.StatusOK, order)
	}
}

var (
	errInvalidTransition = errors.New("invalid status transition")
	errConcurrentUpdate  = errors.New("concurrent order update")
)

// DeleteOrderHandler removes an order. The referenced cart stays.
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		res := db.Delete(&models.Order{}, "id = ?", orderID)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
