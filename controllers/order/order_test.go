package orderControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/models"
)

func orderRouter(db *gorm.DB, mail *fakeMailer) *gin.Engine {
	r := gin.New()
	r.GET("/api/orders", GetAllOrdersHandler(db))
	r.GET("/api/orders/:orderID", GetOrderByIDHandler(db))
	r.PUT("/api/orders/:orderID", UpdateOrderHandler(db, mail))
	r.DELETE("/api/orders/:orderID", DeleteOrderHandler(db))
	return r
}

func TestGetAllOrdersFilters(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "REF001", models.OrderStatusApproved)
	seedOrder(t, db, "REF002", models.OrderStatusPending)
	r := orderRouter(db, &fakeMailer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders?status=approved", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "REF001", orders[0].ExternalReference)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders?sort_by=nome_usuario", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderByExternalReference(t *testing.T) {
	db := newTestDB(t)
	seeded := seedOrder(t, db, "REF001", models.OrderStatusGatewayCreated)
	r := orderRouter(db, &fakeMailer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/REF001", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, seeded.ID, order.ID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/REF404", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func putOrder(t *testing.T, r *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	seeded := seedOrder(t, db, "REF001", models.OrderStatusGatewayCreated)
	mail := &fakeMailer{}
	r := orderRouter(db, mail)

	w := putOrder(t, r, "/api/orders/1", map[string]interface{}{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, db.First(&order, seeded.ID).Error)
	assert.Equal(t, models.OrderStatusApproved, order.Status)
	assert.Equal(t, 1, mail.sentCount())
}

func TestUpdateOrderInvalidTransition(t *testing.T) {
	db := newTestDB(t)
	seeded := seedOrder(t, db, "REF001", models.OrderStatusApproved)
	mail := &fakeMailer{}
	r := orderRouter(db, mail)

	w := putOrder(t, r, "/api/orders/1", map[string]interface{}{"status": "rejected"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var order models.Order
	require.NoError(t, db.First(&order, seeded.ID).Error)
	assert.Equal(t, models.OrderStatusApproved, order.Status)
	assert.Zero(t, mail.sentCount())
}

func TestUpdateOrderUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "REF001", models.OrderStatusPending)
	r := orderRouter(db, &fakeMailer{})

	w := putOrder(t, r, "/api/orders/1", map[string]interface{}{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderPartialFields(t *testing.T) {
	db := newTestDB(t)
	seeded := seedOrder(t, db, "REF001", models.OrderStatusPending)
	mail := &fakeMailer{}
	r := orderRouter(db, mail)

	w := putOrder(t, r, "/api/orders/1", map[string]interface{}{"cidade": "Goiânia"})
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, db.First(&order, seeded.ID).Error)
	assert.Equal(t, "Goiânia", order.Cidade)
	assert.Equal(t, "Maria Silva", order.NomeUsuario)
	// No status change, no email.
	assert.Zero(t, mail.sentCount())
}

func TestDeleteOrderKeepsCart(t *testing.T) {
	db := newTestDB(t)
	cart := models.Cart{Subtotal: 100}
	require.NoError(t, db.Create(&cart).Error)
	order := seedOrder(t, db, "REF001", models.OrderStatusPending)
	require.NoError(t, db.Model(&order).Update("carrinho_id", cart.ID).Error)
	r := orderRouter(db, &fakeMailer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/orders/1", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
	require.NoError(t, db.First(&models.Cart{}, cart.ID).Error)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/orders/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
