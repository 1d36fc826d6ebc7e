package mercadopago

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/config"
)

// Error kinds a caller can match on. ErrRequest covers transport failures
// (network, timeout), ErrRejected a non-2xx answer from the gateway, and
// ErrMalformedResponse a 2xx answer missing required fields.
var (
	ErrRequest           = errors.New("mercadopago: request failed")
	ErrRejected          = errors.New("mercadopago: request rejected")
	ErrMalformedResponse = errors.New("mercadopago: malformed response")
)

// Item is a single checkout line item.
type Item struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id,omitempty"`
}

// BackURLs tells the gateway where to send the buyer after checkout.
type BackURLs struct {
	Success string `json:"success,omitempty"`
	Pending string `json:"pending,omitempty"`
	Failure string `json:"failure,omitempty"`
}

// PreferenceRequest is the payload for creating a checkout preference.
type PreferenceRequest struct {
	Items             []Item   `json:"items"`
	BackURLs          BackURLs `json:"back_urls"`
	AutoReturn        string   `json:"auto_return,omitempty"`
	ExternalReference string   `json:"external_reference,omitempty"`
}

// Preference is the gateway's representation of a checkout session.
type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point,omitempty"`
}

// Payment is the authoritative record fetched back from the gateway. ID is a
// json.Number because the API serializes it as an integer while webhooks
// reference it as a string.
type Payment struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	StatusDetail      string      `json:"status_detail"`
	ExternalReference string      `json:"external_reference"`
	TransactionAmount float64     `json:"transaction_amount"`
}

// Client wraps the MercadoPago REST API. One call per operation, no retries;
// the caller decides how to react to failure.
type Client struct {
	http      *resty.Client
	publicKey string
}

func New(cfg config.MercadoPagoConfig) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetAuthToken(cfg.AccessToken).
			SetHeader("Content-Type", "application/json"),
		publicKey: cfg.PublicKey,
	}
}

// PublicKey returns the key the storefront needs to tokenize card data.
func (c *Client) PublicKey() string {
	return c.publicKey
}

// CreatePreference creates a checkout preference. The idempotency key keeps
// transport-level retries from producing duplicate charges.
func (c *Client) CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error) {
	var pref Preference
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Idempotency-Key", uuid.NewString()).
		SetBody(req).
		SetResult(&pref).
		Post("/checkout/preferences")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode(), resp.String())
	}
	if pref.ID == "" || pref.InitPoint == "" {
		return nil, fmt.Errorf("%w: missing id or init_point", ErrMalformedResponse)
	}
	return &pref, nil
}

// GetPayment fetches full payment details by id. The webhook handler calls
// this instead of trusting notification body fields.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var payment Payment
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payment).
		Get("/v1/payments/" + paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode(), resp.String())
	}
	if payment.Status == "" {
		return nil, fmt.Errorf("%w: missing status", ErrMalformedResponse)
	}
	return &payment, nil
}
