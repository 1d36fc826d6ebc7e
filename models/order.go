package models

import "time"

type OrderStatus string

const (
	// OrderStatusPending is the initial state, set before the payment gateway
	// has been contacted.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusGatewayCreated means a checkout preference exists at the
	// gateway and the buyer was handed a redirect URL.
	OrderStatusGatewayCreated OrderStatus = "gateway_created"
	// OrderStatusPendingConfirmation mirrors the gateway's pending/in_process
	// statuses; the payment is still being decided.
	OrderStatusPendingConfirmation OrderStatus = "pending_confirmation"

	// Terminal states.
	OrderStatusApproved      OrderStatus = "approved"
	OrderStatusRejected      OrderStatus = "rejected"
	OrderStatusFailedGateway OrderStatus = "failed_gateway_creation"
)

// orderTransitions is the allowed status graph. Webhook reconciliation may
// move an order straight from pending to a payment outcome when the gateway
// notification beats the local post-creation update.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {
		OrderStatusGatewayCreated,
		OrderStatusFailedGateway,
		OrderStatusApproved,
		OrderStatusPendingConfirmation,
		OrderStatusRejected,
	},
	OrderStatusGatewayCreated: {
		OrderStatusApproved,
		OrderStatusPendingConfirmation,
		OrderStatusRejected,
	},
	OrderStatusPendingConfirmation: {
		OrderStatusApproved,
		OrderStatusRejected,
	},
}

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransition reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus maps a user supplied string onto a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusGatewayCreated, OrderStatusPendingConfirmation,
		OrderStatusApproved, OrderStatusRejected, OrderStatusFailedGateway:
		return OrderStatus(s), true
	}
	return "", false
}

// Order is a single checkout attempt. ExternalReference correlates the row
// with the payment gateway transaction; it is unique and immutable once set.
type Order struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	NomeUsuario     string `json:"nome_usuario"`
	EmailUsuario    string `json:"email_usuario"`
	CEP             string `json:"cep"`
	Bairro          string `json:"bairro"`
	Cidade          string `json:"cidade"`
	Estado          string `json:"estado"`
	Numero          string `json:"numero"`
	Quadra          string `json:"quadra"`
	MetodoPagamento string `json:"metodo_pagamento"`

	Frete      float64 `json:"frete"`
	ValorTotal float64 `json:"valor_total"`

	Status                  OrderStatus `gorm:"type:VARCHAR(50);default:'pending'" json:"status"`
	ExternalReference       string      `gorm:"size:255;uniqueIndex" json:"external_reference"`
	MercadopagoPreferenceID string      `gorm:"size:255" json:"mercadopago_preference_id"`
	MercadopagoPaymentID    string      `gorm:"size:255" json:"mercadopago_payment_id"`

	// The originating cart snapshot. Referenced, not owned: deleting an order
	// leaves the cart row alone.
	CarrinhoID *uint `json:"codigo_carrinho"`
	Carrinho   *Cart `gorm:"foreignKey:CarrinhoID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
