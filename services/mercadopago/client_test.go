package mercadopago

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/config"
)

func testClient(baseURL string) *Client {
	return New(config.MercadoPagoConfig{
		AccessToken: "TEST-token",
		PublicKey:   "TEST-public-key",
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
	})
}

func TestCreatePreference(t *testing.T) {
	var gotIdempotencyKeys []string
	var gotBody PreferenceRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/checkout/preferences", r.URL.Path)
		require.Equal(t, "Bearer TEST-token", r.Header.Get("Authorization"))
		gotIdempotencyKeys = append(gotIdempotencyKeys, r.Header.Get("X-Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id":         "pref123",
			"init_point": "https://pay/abc",
		})
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	pref, err := client.CreatePreference(context.Background(), PreferenceRequest{
		Items:             []Item{{Title: "Pedido X", Quantity: 1, UnitPrice: 199.90, CurrencyID: "BRL"}},
		ExternalReference: "REF001",
	})
	require.NoError(t, err)
	assert.Equal(t, "pref123", pref.ID)
	assert.Equal(t, "https://pay/abc", pref.InitPoint)
	assert.Equal(t, "REF001", gotBody.ExternalReference)

	// Each creation carries its own idempotency token.
	_, err = client.CreatePreference(context.Background(), PreferenceRequest{
		Items: []Item{{Title: "Pedido Y", Quantity: 1, UnitPrice: 50}},
	})
	require.NoError(t, err)
	require.Len(t, gotIdempotencyKeys, 2)
	assert.NotEmpty(t, gotIdempotencyKeys[0])
	assert.NotEqual(t, gotIdempotencyKeys[0], gotIdempotencyKeys[1])
}

func TestCreatePreferenceMissingInitPoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "pref123"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreatePreference(context.Background(), PreferenceRequest{})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCreatePreferenceRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid items"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreatePreference(context.Background(), PreferenceRequest{})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestGetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/12345", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":                 12345,
			"status":             "approved",
			"status_detail":      "accredited",
			"external_reference": "REF001",
			"transaction_amount": 199.90,
		})
	}))
	defer srv.Close()

	payment, err := testClient(srv.URL).GetPayment(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", payment.ID.String())
	assert.Equal(t, "approved", payment.Status)
	assert.Equal(t, "REF001", payment.ExternalReference)
}

func TestGetPaymentMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetPayment(context.Background(), "12345")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestPublicKey(t *testing.T) {
	assert.Equal(t, "TEST-public-key", testClient("http://localhost").PublicKey())
}
