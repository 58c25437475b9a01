package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
)

type OrderRepository struct {
	DB *gorm.DB
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListByTailor returns orders having at least one item assigned to the
// business as tailor. The join can emit one row per matching item, so
// callers deduplicate by order id.
func (r *OrderRepository) ListByTailor(ctx context.Context, businessID uint, date string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.tailor_id = ?", businessID)
	if date != "" {
		q = q.Where("DATE(orders.order_date) = ?", date)
	}

	orders := []models.Order{}
	if err := q.Order("orders.id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListByShop(ctx context.Context, businessID uint, date string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.shop_id = ?", businessID)
	if date != "" {
		q = q.Where("DATE(orders.order_date) = ?", date)
	}

	orders := []models.Order{}
	if err := q.Order("orders.id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListAssignedToMeasurementBoy(ctx context.Context, userID uint) ([]models.OrderMeasurementBoyAssignment, error) {
	assignments := []models.OrderMeasurementBoyAssignment{}
	err := r.DB.WithContext(ctx).
		Where("measurement_boy_id = ?", userID).
		Order("assigned_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uint, paymentStatus string) (int64, error) {
	result := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", paymentStatus)
	return result.RowsAffected, result.Error
}

// MarkItemsMeasurementDone flags every item of the order. Returns the
// affected count so callers can log a cascade that touched nothing.
func (r *OrderRepository) MarkItemsMeasurementDone(ctx context.Context, orderID uint) (int64, error) {
	result := r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Update("is_measurement_done", true)
	return result.RowsAffected, result.Error
}

func (r *OrderRepository) ListAddressMappings(ctx context.Context, orderID uint) ([]models.OrderDeliveryAddressMapping, error) {
	mappings := []models.OrderDeliveryAddressMapping{}
	err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&mappings).Error
	if err != nil {
		return nil, err
	}
	return mappings, nil
}
