package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/karsis/b2b-eshop/internal/models"
)

// CountOrders reads the order count through the given transaction handle so
// the order-number sequence is derived inside the same atomic scope that
// inserts the new order.
func (r *GormRepo) CountOrders(tx *gorm.DB) (int64, error) {
	var total int64
	if err := tx.Model(&models.Order{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormRepo) FindProductForOrder(tx *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateOrder(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

func (r *GormRepo) CreateOrderItems(tx *gorm.DB, items []models.OrderItem) error {
	return tx.Create(&items).Error
}

func (r *GormRepo) ListOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, orderType models.OrderType, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	if orderType != "" {
		q = q.Where("order_type = ?", orderType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").Preload("Company").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Items").Preload("Company").
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
