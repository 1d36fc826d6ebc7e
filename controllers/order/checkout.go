package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/config"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/services/mercadopago"
)

// PaymentGateway is what the order handlers need from the MercadoPago client.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, req mercadopago.PreferenceRequest) (*mercadopago.Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
	PublicKey() string
}

type CheckoutRequest struct {
	NomeUsuario     string  `json:"nome_usuario"`
	EmailUsuario    string  `json:"email_usuario" binding:"required,email"`
	CEP             string  `json:"cep"`
	Bairro          string  `json:"bairro"`
	Cidade          string  `json:"cidade"`
	Estado          string  `json:"estado"`
	Numero          string  `json:"numero"`
	Quadra          string  `json:"quadra"`
	MetodoPagamento string  `json:"metodo_pagamento" binding:"required"`
	Frete           float64 `json:"frete" binding:"gte=0"`
	ValorTotal      float64 `json:"valor_total" binding:"required,gt=0"`
	Descricao       string  `json:"descricao"`
	CarrinhoID      *uint   `json:"codigo_carrinho"`
}

// generateExternalReference builds the token that joins a local order to its
// gateway transaction. Timestamp plus UUID keeps concurrent checkouts from
// ever colliding.
func generateExternalReference() string {
	return time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()
}

// CreateOrderHandler runs the checkout sequence: persist a pending order,
// create a gateway preference for it, then record the outcome. The order row
// survives a gateway failure so the attempt stays auditable.
func CreateOrderHandler(db *gorm.DB, gateway PaymentGateway, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			var cartID uint
			if req.CarrinhoID != nil {
				var cart models.Cart
				if err := tx.First(&cart, *req.CarrinhoID).Error; err != nil {
					return err
				}
				cartID = cart.ID
			} else {
				cart := models.Cart{Subtotal: req.ValorTotal}
				if err := tx.Create(&cart).Error; err != nil {
					return err
				}
				cartID = cart.ID
			}

			order = models.Order{
				NomeUsuario:       req.NomeUsuario,
				EmailUsuario:      req.EmailUsuario,
				CEP:               req.CEP,
				Bairro:            req.Bairro,
				Cidade:            req.Cidade,
				Estado:            req.Estado,
				Numero:            req.Numero,
				Quadra:            req.Quadra,
				MetodoPagamento:   req.MetodoPagamento,
				Frete:             req.Frete,
				ValorTotal:        req.ValorTotal,
				Status:            models.OrderStatusPending,
				ExternalReference: generateExternalReference(),
				CarrinhoID:        &cartID,
			}
			return tx.Create(&order).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			return
		}

		title := req.Descricao
		if title == "" {
			title = fmt.Sprintf("Pedido %s", order.ExternalReference)
		}
		pref, err := gateway.CreatePreference(c.Request.Context(), mercadopago.PreferenceRequest{
			Items: []mercadopago.Item{{
				Title:      title,
				Quantity:   1,
				UnitPrice:  req.ValorTotal,
				CurrencyID: "BRL",
			}},
			BackURLs: mercadopago.BackURLs{
				Success: cfg.MercadoPago.SuccessURL,
				Pending: cfg.MercadoPago.PendingURL,
				Failure: cfg.MercadoPago.FailureURL,
			},
			AutoReturn:        "all",
			ExternalReference: order.ExternalReference,
		})
		if err != nil {
			// Keep the row for audit, just mark why it went nowhere. The write
			// is conditional on the status still being pending: a webhook may
			// have reconciled the order while the gateway call was in flight,
			// and its answer wins.
			res := db.Model(&models.Order{}).
				Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
				Update("status", models.OrderStatusFailedGateway)
			if res.Error != nil {
				log.Printf("failed to mark order %d as %s: %v", order.ID, models.OrderStatusFailedGateway, res.Error)
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway error", "details": err.Error()})
			return
		}

		// Same conditional guard as the webhook path, so exactly one of the
		// two writers moves the order out of pending.
		res := db.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":                    models.OrderStatusGatewayCreated,
				"mercadopago_preference_id": pref.ID,
			})
		if res.Error != nil {
			// The preference exists at the gateway but the local commit did
			// not land: documented orphan-preference risk, no compensation.
			log.Printf("order %d: preference %s created but local update failed: %v", order.ID, pref.ID, res.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}
		if res.RowsAffected == 0 {
			// A webhook got there first. Its status stands; only the
			// preference id still needs recording.
			if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
				Update("mercadopago_preference_id", pref.ID).Error; err != nil {
				log.Printf("order %d: failed to record preference %s: %v", order.ID, pref.ID, err)
			}
			if err := db.First(&order, order.ID).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
				return
			}
		} else {
			order.Status = models.OrderStatusGatewayCreated
			order.MercadopagoPreferenceID = pref.ID
		}

		c.JSON(http.StatusCreated, gin.H{
			"order_id":           order.ID,
			"external_reference": order.ExternalReference,
			"status":             order.Status,
			"preference_id":      pref.ID,
			"init_point":         pref.InitPoint,
		})
	}
}

// PublicKeyHandler exposes the gateway public key to the storefront.
func PublicKeyHandler(gateway PaymentGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"public_key": gateway.PublicKey()})
	}
}
