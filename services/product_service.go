package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/models"
	"github.com/sanisidro/restaurant-app/utils"
)

type ProductService struct {
	DB *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{DB: db}
}

type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url"`
	Category    string          `json:"category"`
	Available   *bool           `json:"available"`
}

func validateProductInput(input ProductInput) error {
	if err := requireText("product name", input.Name, 100); err != nil {
		return err
	}
	if err := requireText("description", input.Description, 500); err != nil {
		return err
	}
	if err := requireText("category", input.Category, 50); err != nil {
		return err
	}
	if !input.Price.IsPositive() {
		return utils.NewValidationError("price must be greater than 0")
	}
	return nil
}

func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Available:   true,
	}
	if input.Available != nil {
		product.Available = *input.Available
	}

	if err := s.DB.Create(&product).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Product created: %s (%s)", product.Name, product.Category)
	return &product, nil
}

func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, utils.ErrNotFound)
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.ImageURL = input.ImageURL
	product.Category = input.Category
	if input.Available != nil {
		product.Available = *input.Available
	}

	if err := s.DB.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// SetAvailability toggles whether the product may appear on new orders.
func (s *ProductService) SetAvailability(id uint, available bool) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Available = available
	if err := s.DB.Save(product).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Product %s availability set to %t", product.Name, available)
	return product, nil
}

func (s *ProductService) ListAvailable() ([]models.Product, error) {
	var products []models.Product
	err := s.DB.Where("available = ?", true).Order("category, name").Find(&products).Error
	return products, err
}

func (s *ProductService) ListByCategory(category string) ([]models.Product, error) {
	if err := requireText("category", category, 50); err != nil {
		return nil, err
	}
	var products []models.Product
	err := s.DB.Where("category = ? AND available = ?", category, true).
		Order("name").Find(&products).Error
	return products, err
}

func (s *ProductService) ListByPriceRange(min, max decimal.Decimal) ([]models.Product, error) {
	if max.LessThan(min) {
		return nil, utils.NewValidationError("maximum price must not be below minimum price")
	}
	var products []models.Product
	err := s.DB.Where("price BETWEEN ? AND ? AND available = ?", min, max, true).
		Order("price").Find(&products).Error
	return products, err
}

func (s *ProductService) SearchByName(name string) ([]models.Product, error) {
	if err := requireText("name", name, 100); err != nil {
		return nil, err
	}
	var products []models.Product
	err := s.DB.Where("LOWER(name) LIKE LOWER(?) AND available = ?", "%"+name+"%", true).
		Order("name").Find(&products).Error
	return products, err
}

// Categories returns the distinct categories that currently have available
// products.
func (s *ProductService) Categories() ([]string, error) {
	var categories []string
	err := s.DB.Model(&models.Product{}).
		Distinct("category").
		Where("available = ?", true).
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
