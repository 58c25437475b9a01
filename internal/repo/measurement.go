package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
)

type MeasurementRepository struct {
	DB *gorm.DB
}

func (r *MeasurementRepository) GetByItemAndKey(ctx context.Context, orderItemID uint, key string) (*models.Measurement, error) {
	var m models.Measurement
	err := r.DB.WithContext(ctx).
		Where("order_item_id = ? AND measurement_key = ?", orderItemID, key).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MeasurementRepository) Create(ctx context.Context, m *models.Measurement) (*models.Measurement, error) {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MeasurementRepository) Update(ctx context.Context, m *models.Measurement) error {
	return r.DB.WithContext(ctx).Save(m).Error
}

func (r *MeasurementRepository) ListByOrderItem(ctx context.Context, orderItemID uint) ([]models.Measurement, error) {
	rows := []models.Measurement{}
	err := r.DB.WithContext(ctx).
		Where("order_item_id = ?", orderItemID).
		Order("measurement_key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// KeysByOrderItem returns the distinct measurement keys present for every
// item of the order, keyed by order item id.
func (r *MeasurementRepository) KeysByOrderItem(ctx context.Context, orderID uint) (map[uint][]string, error) {
	var rows []models.Measurement
	err := r.DB.WithContext(ctx).
		Joins("JOIN order_items ON order_items.id = measurements.order_item_id").
		Where("order_items.order_id = ?", orderID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	keys := map[uint][]string{}
	for _, m := range rows {
		keys[m.OrderItemID] = append(keys[m.OrderItemID], m.MeasurementKey)
	}
	return keys, nil
}
