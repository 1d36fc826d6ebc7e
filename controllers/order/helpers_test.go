package orderControllers

import (
	"context"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/config"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/services/mercadopago"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Cart{},
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		MercadoPago: config.MercadoPagoConfig{
			SuccessURL: "https://loja/sucesso",
			PendingURL: "https://loja/pendente",
			FailureURL: "https://loja/falha",
		},
	}
}

// fakeGateway is a scriptable PaymentGateway.
type fakeGateway struct {
	mu          sync.Mutex
	pref        *mercadopago.Preference
	prefErr     error
	payment     *mercadopago.Payment
	paymentErr  error
	createCalls []mercadopago.PreferenceRequest
	getCalls    []string
}

func (f *fakeGateway) CreatePreference(_ context.Context, req mercadopago.PreferenceRequest) (*mercadopago.Preference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, req)
	if f.prefErr != nil {
		return nil, f.prefErr
	}
	return f.pref, nil
}

func (f *fakeGateway) GetPayment(_ context.Context, paymentID string) (*mercadopago.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, paymentID)
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	return f.payment, nil
}

func (f *fakeGateway) PublicKey() string { return "TEST-public-key" }

// fakeMailer records sent mail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func init() {
	gin.SetMode(gin.TestMode)
}
