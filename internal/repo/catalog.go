package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
)

// CatalogRepository resolves the lookup tables backing the product catalog.
// Name lookups are exact on the trimmed value and fail closed.
type CatalogRepository struct {
	DB *gorm.DB
}

func (r *CatalogRepository) GetBrandByID(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	err := r.DB.WithContext(ctx).First(&brand, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *CatalogRepository) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *CatalogRepository) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.DB.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) GetProductTypeByID(ctx context.Context, id uint) (*models.ProductType, error) {
	var productType models.ProductType
	err := r.DB.WithContext(ctx).First(&productType, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &productType, nil
}

func (r *CatalogRepository) GetProductTypeByName(ctx context.Context, name string) (*models.ProductType, error) {
	var productType models.ProductType
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&productType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &productType, nil
}
