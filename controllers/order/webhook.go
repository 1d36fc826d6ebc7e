package orderControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/services/mailer"
)

// flexID decodes a payment id that arrives as either a JSON string or a
// number, which MercadoPago does depending on the notification flavor.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexID(n.String())
		return nil
	}
	return errors.New("payment id must be a string or a number")
}

// webhookPayload is the notification body MercadoPago posts. The payment id
// arrives either top-level or nested under data.
type webhookPayload struct {
	Topic string `json:"topic"`
	ID    flexID `json:"id"`
	Data  struct {
		ID flexID `json:"id"`
	} `json:"data"`
}

func (p webhookPayload) paymentID() string {
	if p.ID != "" {
		return string(p.ID)
	}
	return string(p.Data.ID)
}

// mapGatewayStatus translates the gateway's payment status onto the local
// order lifecycle.
func mapGatewayStatus(status string) models.OrderStatus {
	switch status {
	case "approved":
		return models.OrderStatusApproved
	case "pending", "in_process":
		return models.OrderStatusPendingConfirmation
	default:
		return models.OrderStatusRejected
	}
}

// WebhookHandler reconciles an order with the gateway after an asynchronous
// notification. The webhook body is never trusted for the status: the payment
// is re-fetched and that answer wins. Applying the same notification twice is
// a no-op, which is what makes gateway redeliveries safe.
func WebhookHandler(db *gorm.DB, gateway PaymentGateway, mail mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload webhookPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid JSON"})
			return
		}

		if payload.Topic != "payment" {
			c.JSON(http.StatusOK, gin.H{"status": "received"})
			return
		}

		paymentID := payload.paymentID()
		if paymentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "payment id not found in webhook"})
			return
		}

		payment, err := gateway.GetPayment(c.Request.Context(), paymentID)
		if err != nil {
			log.Printf("webhook: failed to fetch payment %s: %v", paymentID, err)
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "failed to fetch payment details"})
			return
		}

		if payment.ExternalReference == "" {
			log.Printf("webhook: payment %s has no external_reference, ignoring", paymentID)
			c.JSON(http.StatusOK, gin.H{"status": "ignored", "message": "no external_reference"})
			return
		}

		newStatus := mapGatewayStatus(payment.Status)
		var fetched models.Order
		statusChanged := false
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("external_reference = ?", payment.ExternalReference).First(&fetched).Error; err != nil {
				return err
			}
			if fetched.Status == newStatus && fetched.MercadopagoPaymentID == payment.ID.String() {
				return nil
			}
			if fetched.Status != newStatus && !fetched.Status.CanTransition(newStatus) {
				log.Printf("webhook: order %d ignoring transition %s -> %s", fetched.ID, fetched.Status, newStatus)
				return nil
			}

			// Conditional write on the previously read status so a racing
			// update to the same row loses cleanly instead of interleaving.
			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", fetched.ID, fetched.Status).
				Updates(map[string]interface{}{
					"status":                 newStatus,
					"mercadopago_payment_id": payment.ID.String(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				log.Printf("webhook: order %d changed concurrently, leaving it alone", fetched.ID)
				return nil
			}
			statusChanged = fetched.Status != newStatus
			fetched.Status = newStatus
			fetched.MercadopagoPaymentID = payment.ID.String()
			return nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("webhook: no order with external_reference %s", payment.ExternalReference)
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}

		if statusChanged {
			notifyStatusChange(mail, fetched)
			broadcastOrderUpdate(fetched)
		}

		c.JSON(http.StatusOK, gin.H{"status": "received"})
	}
}

// notifyStatusChange emails the buyer about the new status. Best-effort:
// failures are logged and swallowed, status persistence already happened.
func notifyStatusChange(mail mailer.Mailer, order models.Order) {
	if order.EmailUsuario == "" {
		return
	}
	subject := fmt.Sprintf("Seu pedido #%d foi atualizado!", order.ID)
	body := fmt.Sprintf("Seu pedido #%d foi atualizado para: %s.", order.ID, order.Status)
	if err := mail.Send(order.EmailUsuario, subject, body); err != nil {
		log.Printf("failed to email %s about order %d: %v", order.EmailUsuario, order.ID, err)
	}
}
