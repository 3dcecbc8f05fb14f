package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/models"
	"github.com/sanisidro/restaurant-app/router"
	"github.com/sanisidro/restaurant-app/utils"
)

func setupIntegrationDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:integration_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
	))
	return db
}

func doJSON(r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

func TestFullOrderLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	// Register an admin and log in
	w := doJSON(r, "POST", "/register", "", gin.H{
		"name":     "Dueño",
		"email":    "owner@sanisidro.pe",
		"password": "secret123",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "POST", "/login", "", gin.H{
		"email":    "owner@sanisidro.pe",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeData(t, w)["token"].(string)
	require.NotEmpty(t, token)

	// The admin surface rejects anonymous calls
	w = doJSON(r, "GET", "/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Create a product through the admin API
	w = doJSON(r, "POST", "/admin/products", token, gin.H{
		"name":        "Aji de Gallina",
		"description": "Con arroz y papa",
		"price":       24.00,
		"category":    "Platos",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	productID := int(decodeData(t, w)["id"].(float64))

	// A customer finds it on the public menu
	w = doJSON(r, "GET", "/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// and places an order
	w = doJSON(r, "POST", "/orders", "", gin.H{
		"customer_name": "Lucia Torres",
		"items": []gin.H{
			{"product_id": productID, "quantity": 3},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderData := decodeData(t, w)
	orderID := int(orderData["id"].(float64))
	assert.Equal(t, "PENDING", orderData["status"])
	assert.Equal(t, "72", orderData["total"].(string)[:2])

	// Staff walk it through the kitchen
	statusURL := "/admin/orders/" + strconv.Itoa(orderID) + "/status"
	for _, status := range []string{"IN_PREPARATION", "READY", "DELIVERED"} {
		w = doJSON(r, "PATCH", statusURL, token, gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code, "moving to %s", status)
	}
	assert.NotNil(t, decodeData(t, w)["delivered_at"])

	// Delivered orders are frozen
	w = doJSON(r, "PATCH", statusURL, token, gin.H{"status": "CANCELLED"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The dashboard reflects the delivered order
	w = doJSON(r, "GET", "/admin/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeData(t, w)
	assert.Equal(t, float64(1), stats["total_orders"])
}

func TestFullReservationLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	w := doJSON(r, "POST", "/register", "", gin.H{
		"name":     "Recepcion",
		"email":    "front@sanisidro.pe",
		"password": "secret123",
		"role":     "staff",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, "POST", "/login", "", gin.H{
		"email":    "front@sanisidro.pe",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeData(t, w)["token"].(string)

	date := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	w = doJSON(r, "POST", "/reservations", "", gin.H{
		"customer_name":    "Pedro Salas",
		"customer_phone":   "+51987654321",
		"reservation_date": date,
		"reservation_time": "20:00",
		"party_size":       6,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reservationID := int(decodeData(t, w)["id"].(float64))

	// Staff assign table 3; the pending reservation confirms
	tableURL := "/admin/reservations/" + strconv.Itoa(reservationID) + "/table"
	w = doJSON(r, "PATCH", tableURL, token, gin.H{"table_number": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CONFIRMED", decodeData(t, w)["status"])

	// Table 3 is now blocked inside the two hour window, free after it
	w = doJSON(r, "GET", "/reservations/availability?table=3&date="+date+"&time=20:30", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeData(t, w)["available"].(bool))

	w = doJSON(r, "GET", "/reservations/availability?table=3&date="+date+"&time=22:00", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeData(t, w)["available"].(bool))

	// Completing the reservation freezes it
	statusURL := "/admin/reservations/" + strconv.Itoa(reservationID) + "/status"
	w = doJSON(r, "PATCH", statusURL, token, gin.H{"status": "COMPLETED"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, "PATCH", statusURL, token, gin.H{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusConflict, w.Code)
}
