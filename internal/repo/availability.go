package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
)

// AvailabilityRepository covers the tailor-side calendar and per-item
// pricing. Both tables are keyed by a natural composite and written through
// find-then-update-or-create upserts.
type AvailabilityRepository struct {
	DB *gorm.DB
}

func (r *AvailabilityRepository) UpsertDateAvailability(ctx context.Context, businessID uint, date string, isClosed bool) (*models.TailorDateAvailability, bool, error) {
	var row models.TailorDateAvailability
	err := r.DB.WithContext(ctx).
		Where("business_id = ? AND date = ?", businessID, date).
		First(&row).Error
	if err == nil {
		row.IsClosed = isClosed
		if err := r.DB.WithContext(ctx).Save(&row).Error; err != nil {
			return nil, false, err
		}
		return &row, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	row = models.TailorDateAvailability{BusinessID: businessID, Date: date, IsClosed: isClosed}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, false, err
	}
	return &row, true, nil
}

func (r *AvailabilityRepository) ListDateAvailability(ctx context.Context, businessID uint, from, to string) ([]models.TailorDateAvailability, error) {
	q := r.DB.WithContext(ctx).Where("business_id = ?", businessID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	rows := []models.TailorDateAvailability{}
	if err := q.Order("date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AvailabilityRepository) UpsertItemPrice(ctx context.Context, price *models.TailorItemPrice) (*models.TailorItemPrice, bool, error) {
	var row models.TailorItemPrice
	err := r.DB.WithContext(ctx).
		Where("business_id = ? AND item_id = ?", price.BusinessID, price.ItemID).
		First(&row).Error
	if err == nil {
		row.Price = price.Price
		row.IsAvailable = price.IsAvailable
		row.EstimatedDays = price.EstimatedDays
		if err := r.DB.WithContext(ctx).Save(&row).Error; err != nil {
			return nil, false, err
		}
		return &row, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := r.DB.WithContext(ctx).Create(price).Error; err != nil {
		return nil, false, err
	}
	return price, true, nil
}

func (r *AvailabilityRepository) ListItemPrices(ctx context.Context, businessID uint) ([]models.TailorItemPrice, error) {
	rows := []models.TailorItemPrice{}
	err := r.DB.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("item_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
