package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
)

type ProductRepository struct {
	DB *gorm.DB
}

// ProductFilters drives the paginated catalog listing.
type ProductFilters struct {
	Search   string
	IsActive *bool
	Offset   int
	Limit    int
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Price").
		Preload("Compliance").
		Preload("Images").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context, f *ProductFilters) ([]models.Product, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := []models.Product{}
	err := q.Preload("Price").Preload("Images").
		Order("id ASC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) ListImages(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// ReplaceImages deletes every image row of the product and inserts the new
// set; the first entry is flagged primary. Runs in the supplied transaction
// when tx is not nil.
func (r *ProductRepository) ReplaceImages(ctx context.Context, tx *gorm.DB, productID uint, urls []string) ([]models.ProductImage, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	db = db.WithContext(ctx)

	if err := db.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return nil, err
	}

	images := make([]models.ProductImage, 0, len(urls))
	for i, url := range urls {
		image := models.ProductImage{
			ProductID: productID,
			URL:       url,
			IsPrimary: i == 0,
		}
		if err := db.Create(&image).Error; err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, nil
}
