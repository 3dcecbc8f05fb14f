package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/controllers"
	"github.com/sanisidro/restaurant-app/models"
	"github.com/sanisidro/restaurant-app/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:ctrl_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Order{},
		&models.OrderItem{}, &models.Reservation{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func seedTestProduct(db *gorm.DB, name string, price string, available bool) models.Product {
	p := models.Product{
		Name:        name,
		Description: "test",
		Price:       decimal.RequireFromString(price),
		Category:    "Platos",
		Available:   available,
	}
	db.Create(&p)
	return p
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	return router
}

func TestCreateAndGetOrder(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	menu := seedTestProduct(db, "Ceviche", "32.00", true)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"customer_name": "Maria Quispe",
		"items": []map[string]interface{}{
			{"product_id": menu.ID, "quantity": 2},
		},
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/orders", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var createResp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &createResp)
	assert.NoError(t, err)
	assert.Equal(t, "Order created", createResp["message"])
	data := createResp["data"].(map[string]interface{})
	orderIDFloat, ok := data["id"].(float64)
	assert.True(t, ok)
	orderID := int(orderIDFloat)
	assert.Equal(t, "PENDING", data["status"])

	number, _ := data["order_number"].(string)
	assert.True(t, strings.HasPrefix(number, "PED"))

	url := "/orders/" + strconv.Itoa(orderID)
	req, err = http.NewRequest("GET", url, nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var getResp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &getResp)
	assert.NoError(t, err)
	assert.Equal(t, "Order detail", getResp["message"])
	getData := getResp["data"].(map[string]interface{})
	assert.Equal(t, float64(orderID), getData["id"].(float64))
	items := getData["items"].([]interface{})
	assert.Len(t, items, 1)
}

func TestOrderStatusEndpointGuardsDelivered(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	menu := seedTestProduct(db, "Chaufa", "16.00", true)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"customer_name": "Jose Flores",
		"items": []map[string]interface{}{
			{"product_id": menu.ID, "quantity": 1},
		},
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &createResp)
	orderID := int(createResp["data"].(map[string]interface{})["id"].(float64))
	url := "/orders/" + strconv.Itoa(orderID) + "/status"

	patch := func(status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"status": status})
		req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, patch("IN_PREPARATION").Code)
	assert.Equal(t, http.StatusOK, patch("READY").Code)

	w = patch("DELIVERED")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp["data"].(map[string]interface{})
	assert.NotNil(t, data["delivered_at"])

	// A delivered order is frozen
	assert.Equal(t, http.StatusConflict, patch("CANCELLED").Code)
	assert.Equal(t, http.StatusConflict, patch("PENDING").Code)
}

func TestCreateOrderRejectsUnavailableProductHTTP(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	menu := seedTestProduct(db, "Anticuchos", "15.00", false)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"customer_name": "Ana Castro",
		"items": []map[string]interface{}{
			{"product_id": menu.ID, "quantity": 2},
		},
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
