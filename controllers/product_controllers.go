package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/models"
	"github.com/sanisidro/restaurant-app/services"
	"github.com/sanisidro/restaurant-app/utils"
)

type ProductController struct {
	Service *services.ProductService
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{Service: services.NewProductService(db)}
}

// GetAllProducts supports optional ?category=, ?name=, ?min_price=&max_price=
// filters; without filters it lists the available menu.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		products, err := pc.Service.ListByCategory(category)
		if err != nil {
			utils.RespondDomainError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Products by category", products)
		return
	}

	if name := c.Query("name"); name != "" {
		products, err := pc.Service.SearchByName(name)
		if err != nil {
			utils.RespondDomainError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Products matching name", products)
		return
	}

	if minRaw, maxRaw := c.Query("min_price"), c.Query("max_price"); minRaw != "" || maxRaw != "" {
		min, err := decimal.NewFromString(minRaw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid min_price"))
			return
		}
		max, err := decimal.NewFromString(maxRaw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid max_price"))
			return
		}
		products, err := pc.Service.ListByPriceRange(min, max)
		if err != nil {
			utils.RespondDomainError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Products in price range", products)
		return
	}

	products, err := pc.Service.ListAvailable()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetAllProductsAdmin -> includes unavailable products
func (pc *ProductController) GetAllProductsAdmin(c *gin.Context) {
	var products []models.Product
	if err := pc.Service.DB.Order("category, name").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid product id"))
		return
	}

	product, err := pc.Service.GetByID(uint(id))
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

func (pc *ProductController) GetCategories(c *gin.Context) {
	categories, err := pc.Service.Categories()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product categories", categories)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := pc.Service.Create(input)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid product id"))
		return
	}

	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := pc.Service.Update(uint(id), input)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// SetAvailability -> PATCH { "available": false } pulls a product off the menu
func (pc *ProductController) SetAvailability(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid product id"))
		return
	}

	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := pc.Service.SetAvailability(uint(id), *req.Available)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product availability updated", product)
}
