package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Canyildiz1386/SultanPanelBot/internal/models"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
)

// OrderRepository handles order database operations.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a placed order.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// FindByOrderID finds an order by the panel-issued id.
func (r *OrderRepository) FindByOrderID(orderID int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shop.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByUser returns one page of a user's orders, newest first.
func (r *OrderRepository) FindByUser(userID uint, limit, page int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	db := r.db.Model(&models.Order{}).Where("user_id = ?", userID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}
	if err := db.Order("timestamp DESC").Limit(limit).Offset(page * limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus persists a refreshed panel status.
func (r *OrderRepository) UpdateStatus(orderID int64, status string) error {
	return r.db.Model(&models.Order{}).Where("order_id = ?", orderID).
		Update("status", status).Error
}

// FindStale returns non-terminal orders last created before the cutoff,
// for the periodic status sweep.
func (r *OrderRepository) FindStale(before time.Time, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("status IN ? AND timestamp < ?",
			[]string{models.OrderStatusPending, models.OrderStatusInProgress, models.OrderStatusUnknown}, before).
		Order("timestamp ASC").Limit(limit).Find(&orders).Error
	return orders, err
}
