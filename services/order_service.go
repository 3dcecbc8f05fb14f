package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/models"
	"github.com/sanisidro/restaurant-app/utils"
)

const (
	minItemQuantity = 1
	maxItemQuantity = 99
)

// TransitionOrder applies a status change to an order value. Delivered orders
// are frozen: the only allowed target is DELIVERED itself (a no-op). Every
// other move between states is permitted, including backward ones.
func TransitionOrder(order *models.Order, newStatus models.OrderStatus) error {
	if newStatus == "" || !newStatus.Valid() {
		return &utils.InvalidTransitionError{From: string(order.Status), To: string(newStatus)}
	}

	if order.Status == models.OrderDelivered && newStatus != models.OrderDelivered {
		return &utils.InvalidTransitionError{From: string(order.Status), To: string(newStatus)}
	}

	order.Status = newStatus

	if newStatus == models.OrderDelivered && order.DeliveredAt == nil {
		now := time.Now()
		order.DeliveredAt = &now
	}
	return nil
}

// AddItem links an item to the order and appends it. The stored total is not
// touched; callers recompute and persist it explicitly.
func AddItem(order *models.Order, item *models.OrderItem) error {
	if item == nil {
		return utils.NewValidationError("order item is required")
	}
	item.OrderID = order.ID
	order.Items = append(order.Items, *item)
	return nil
}

// ComputeTotal sums the line-item subtotals without mutating the order.
func ComputeTotal(order *models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, item := range order.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// NewOrderItem builds a line item against a product, capturing the product's
// current price as the immutable unit price.
func NewOrderItem(product *models.Product, quantity int) (*models.OrderItem, error) {
	if product == nil {
		return nil, utils.NewValidationError("product is required")
	}
	if quantity < minItemQuantity || quantity > maxItemQuantity {
		return nil, utils.NewValidationError("quantity must be between %d and %d", minItemQuantity, maxItemQuantity)
	}
	if !product.IsAvailable() {
		return nil, &utils.ProductUnavailableError{Name: product.Name}
	}

	return &models.OrderItem{
		ProductID: product.ID,
		Product:   *product,
		Quantity:  quantity,
		UnitPrice: product.Price,
		Subtotal:  product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// UpdateItemQuantity recomputes the subtotal from the captured unit price.
// The product's live price is never re-queried.
func UpdateItemQuantity(item *models.OrderItem, quantity int) error {
	if quantity < minItemQuantity || quantity > maxItemQuantity {
		return utils.NewValidationError("quantity must be between %d and %d", minItemQuantity, maxItemQuantity)
	}
	item.Quantity = quantity
	item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return nil
}

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderItemInput struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

type OrderInput struct {
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	CustomerPhone string           `json:"customer_phone"`
	TableNumber   *int             `json:"table_number"`
	Notes         string           `json:"notes"`
	Items         []OrderItemInput `json:"items"`
}

// OrderStats counts orders per lifecycle state.
type OrderStats struct {
	Pending       int64 `json:"pending"`
	InPreparation int64 `json:"in_preparation"`
	Ready         int64 `json:"ready"`
	Delivered     int64 `json:"delivered"`
	Cancelled     int64 `json:"cancelled"`
	Total         int64 `json:"total"`
}

// Create validates the request, captures unit prices, computes the total and
// persists the order with its items in a single transaction.
func (s *OrderService) Create(input OrderInput) (*models.Order, error) {
	if err := requireText("customer name", input.CustomerName, 100); err != nil {
		return nil, err
	}
	if err := validateContact(input.CustomerEmail, input.CustomerPhone); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, utils.NewValidationError("order must contain at least one item")
	}
	if len(input.Notes) > 500 {
		return nil, utils.NewValidationError("notes cannot exceed 500 characters")
	}

	now := time.Now()
	order := models.Order{
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Status:        models.OrderPending,
		TableNumber:   input.TableNumber,
		Notes:         input.Notes,
		OrderedAt:     now,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		number, err := s.generateOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		total := decimal.Zero
		for _, in := range input.Items {
			var product models.Product
			if err := tx.First(&product, in.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", in.ProductID, utils.ErrNotFound)
				}
				return err
			}

			item, err := NewOrderItem(&product, in.Quantity)
			if err != nil {
				return err
			}
			if len(in.Notes) > 200 {
				return utils.NewValidationError("item notes cannot exceed 200 characters")
			}
			item.Notes = in.Notes

			if err := AddItem(&order, item); err != nil {
				return err
			}
			total = total.Add(item.Subtotal)
		}

		order.Total = total
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s created for %s (total %s)",
		order.OrderNumber, order.CustomerName, order.Total.StringFixed(2))
	return &order, nil
}

func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Items").Preload("Items.Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, utils.ErrNotFound)
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetByNumber(number string) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("Items").Preload("Items.Product").
		Where("order_number = ?", number).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", number, utils.ErrNotFound)
		}
		return nil, err
	}
	return &order, nil
}

// ChangeStatus loads the order, applies the transition rules and persists the
// result.
func (s *OrderService) ChangeStatus(id uint, newStatus models.OrderStatus) (*models.Order, error) {
	order, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if err := TransitionOrder(order, newStatus); err != nil {
		return nil, err
	}

	if err := s.DB.Save(order).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s moved from %s to %s", order.OrderNumber, previous, order.Status)
	return order, nil
}

// ChangeItemQuantity updates one line item and refreshes the order total so
// the stored total keeps matching the sum of subtotals.
func (s *OrderService) ChangeItemQuantity(itemID uint, quantity int) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := s.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order item %d: %w", itemID, utils.ErrNotFound)
		}
		return nil, err
	}

	if err := UpdateItemQuantity(&item, quantity); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		var order models.Order
		if err := tx.Preload("Items").First(&order, item.OrderID).Error; err != nil {
			return err
		}
		order.Total = ComputeTotal(&order)
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListToday returns orders placed on the current date, newest first.
func (s *OrderService) ListToday() ([]models.Order, error) {
	today := time.Now().Format("2006-01-02")
	var orders []models.Order
	err := s.DB.Preload("Items").
		Where("DATE(ordered_at) = ?", today).
		Order("ordered_at desc").
		Find(&orders).Error
	return orders, err
}

func (s *OrderService) ListByStatus(status models.OrderStatus) ([]models.Order, error) {
	if !status.Valid() {
		return nil, utils.NewValidationError("unknown order status: %s", status)
	}
	var orders []models.Order
	err := s.DB.Preload("Items").
		Where("status = ?", status).
		Order("ordered_at desc").
		Find(&orders).Error
	return orders, err
}

// ListActive returns pending and in-preparation orders, oldest first so the
// kitchen works the queue in arrival order.
func (s *OrderService) ListActive() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("Items").
		Where("status IN ?", []models.OrderStatus{models.OrderPending, models.OrderInPreparation}).
		Order("ordered_at asc").
		Find(&orders).Error
	return orders, err
}

func (s *OrderService) ListByDateRange(start, end time.Time) ([]models.Order, error) {
	if !end.After(start) {
		return nil, utils.NewValidationError("end date must be after start date")
	}
	var orders []models.Order
	err := s.DB.Preload("Items").
		Where("ordered_at BETWEEN ? AND ?", start, end).
		Order("ordered_at desc").
		Find(&orders).Error
	return orders, err
}

// SearchByCustomer matches on customer name or phone.
func (s *OrderService) SearchByCustomer(term string) ([]models.Order, error) {
	if err := requireText("search term", term, 100); err != nil {
		return nil, err
	}
	pattern := "%" + term + "%"
	var orders []models.Order
	err := s.DB.Preload("Items").
		Where("LOWER(customer_name) LIKE LOWER(?) OR customer_phone LIKE ?", pattern, pattern).
		Order("ordered_at desc").
		Find(&orders).Error
	return orders, err
}

func (s *OrderService) Stats() (*OrderStats, error) {
	var stats OrderStats
	counts := map[models.OrderStatus]*int64{
		models.OrderPending:       &stats.Pending,
		models.OrderInPreparation: &stats.InPreparation,
		models.OrderReady:         &stats.Ready,
		models.OrderDelivered:     &stats.Delivered,
		models.OrderCancelled:     &stats.Cancelled,
	}
	for status, dest := range counts {
		if err := s.DB.Model(&models.Order{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return nil, err
		}
	}
	stats.Total = stats.Pending + stats.InPreparation + stats.Ready + stats.Delivered + stats.Cancelled
	return &stats, nil
}

// generateOrderNumber produces PED + yyyymmdd + a 4-digit suffix, retrying
// until the number is unused.
func (s *OrderService) generateOrderNumber(tx *gorm.DB) (string, error) {
	date := time.Now().Format("20060102")
	for {
		number := fmt.Sprintf("PED%s%04d", date, 1000+rand.Intn(9000))
		var count int64
		if err := tx.Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
}
