package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/controllers"
	"github.com/sanisidro/restaurant-app/utils"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupUserRouter(db)

	payload := map[string]string{
		"name":     "Admin",
		"email":    "admin@sanisidro.pe",
		"password": "secret123",
		"role":     "admin",
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	login := map[string]string{"email": "admin@sanisidro.pe", "password": "secret123"}
	loginBytes, _ := json.Marshal(login)
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(loginBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "admin", data["role"])

	// Wrong password
	login["password"] = "wrong"
	loginBytes, _ = json.Marshal(login)
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(loginBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
