package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
)

type BusinessRepository struct {
	DB *gorm.DB
}

// BusinessPatch is the typed partial update for a business profile. Only
// fields present in the request are written, and each maps to a fixed
// column; request keys never reach the SQL layer.
type BusinessPatch struct {
	ShopName    *string  `json:"shop_name"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	OpeningTime *string  `json:"opening_time"`
	ClosingTime *string  `json:"closing_time"`
	LogoURL     *string  `json:"logo_url"`
	Categories  *string  `json:"categories"`
}

func (p *BusinessPatch) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.ShopName != nil {
		cols["shop_name"] = *p.ShopName
	}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	if p.Latitude != nil {
		cols["latitude"] = *p.Latitude
	}
	if p.Longitude != nil {
		cols["longitude"] = *p.Longitude
	}
	if p.OpeningTime != nil {
		cols["opening_time"] = *p.OpeningTime
	}
	if p.ClosingTime != nil {
		cols["closing_time"] = *p.ClosingTime
	}
	if p.LogoURL != nil {
		cols["logo_url"] = *p.LogoURL
	}
	if p.Categories != nil {
		cols["categories"] = *p.Categories
	}
	return cols
}

func (r *BusinessRepository) Create(ctx context.Context, business *models.BusinessInformation) (*models.BusinessInformation, error) {
	if err := r.DB.WithContext(ctx).Create(business).Error; err != nil {
		return nil, err
	}
	return business, nil
}

func (r *BusinessRepository) GetByID(ctx context.Context, id uint) (*models.BusinessInformation, error) {
	var business models.BusinessInformation
	err := r.DB.WithContext(ctx).First(&business, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *BusinessRepository) GetByUserID(ctx context.Context, userID uint) (*models.BusinessInformation, error) {
	var business models.BusinessInformation
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&business).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// Patch applies a partial update and returns the affected row count; zero
// means the business does not exist (or nothing was sent).
func (r *BusinessRepository) Patch(ctx context.Context, id uint, patch *BusinessPatch) (int64, error) {
	cols := patch.columns()
	if len(cols) == 0 {
		return 0, nil
	}
	result := r.DB.WithContext(ctx).
		Model(&models.BusinessInformation{}).
		Where("id = ?", id).
		Updates(cols)
	return result.RowsAffected, result.Error
}

// Delete soft-deletes the business row.
func (r *BusinessRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.DB.WithContext(ctx).Delete(&models.BusinessInformation{}, id)
	return result.RowsAffected, result.Error
}
