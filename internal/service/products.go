package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
	"github.com/stitchkart/tailor_shop/internal/repo"
)

type ProductService struct {
	DB       *gorm.DB
	Catalog  *repo.CatalogRepository
	Products *repo.ProductRepository
}

type PriceInput struct {
	PriceMRP  float64    `json:"price_mrp"`
	PriceSale *float64   `json:"price_sale"`
	Currency  string     `json:"currency"`
	ValidFrom *time.Time `json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to"`
}

type ComplianceInput struct {
	CountryOfOrigin string `json:"country_of_origin"`
	Manufacturer    string `json:"manufacturer"`
	Importer        string `json:"importer"`
	NetQuantity     string `json:"net_quantity"`
}

type CreateProductInput struct {
	Brand       string           `json:"brand"`
	Category    string           `json:"category"`
	ProductType string           `json:"product_type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	SKU         string           `json:"sku"`
	IsActive    *bool            `json:"is_active"`
	Price       *PriceInput      `json:"price"`
	Compliance  *ComplianceInput `json:"compliance"`
}

type UpdateProductInput struct {
	Brand       string           `json:"brand"`
	Category    string           `json:"category"`
	ProductType string           `json:"product_type"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku"`
	IsActive    *bool            `json:"is_active"`
	Price       *PriceInput      `json:"price"`
	Compliance  *ComplianceInput `json:"compliance"`
}

// resolveBrand accepts a display name or a numeric id. Numeric-looking
// strings are treated as ids and must exist; names must match an existing
// row exactly after trimming. Nothing is ever auto-created.
func (s *ProductService) resolveBrand(ctx context.Context, input string) (uint, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return 0, fmt.Errorf("%w: brand required", ErrValidation)
	}
	if id, err := strconv.ParseUint(value, 10, 64); err == nil {
		brand, err := s.Catalog.GetBrandByID(ctx, uint(id))
		if err != nil {
			return 0, err
		}
		if brand == nil {
			return 0, fmt.Errorf("%w: brand id %d does not exist", ErrNotFound, id)
		}
		return brand.ID, nil
	}
	brand, err := s.Catalog.GetBrandByName(ctx, value)
	if err != nil {
		return 0, err
	}
	if brand == nil {
		return 0, fmt.Errorf("%w: brand %q does not exist", ErrValidation, value)
	}
	return brand.ID, nil
}

func (s *ProductService) resolveCategory(ctx context.Context, input string) (uint, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return 0, fmt.Errorf("%w: category required", ErrValidation)
	}
	if id, err := strconv.ParseUint(value, 10, 64); err == nil {
		category, err := s.Catalog.GetCategoryByID(ctx, uint(id))
		if err != nil {
			return 0, err
		}
		if category == nil {
			return 0, fmt.Errorf("%w: category id %d does not exist", ErrNotFound, id)
		}
		return category.ID, nil
	}
	category, err := s.Catalog.GetCategoryByName(ctx, value)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, fmt.Errorf("%w: category %q does not exist", ErrValidation, value)
	}
	return category.ID, nil
}

func (s *ProductService) resolveProductType(ctx context.Context, input string) (uint, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return 0, nil
	}
	if id, err := strconv.ParseUint(value, 10, 64); err == nil {
		productType, err := s.Catalog.GetProductTypeByID(ctx, uint(id))
		if err != nil {
			return 0, err
		}
		if productType == nil {
			return 0, fmt.Errorf("%w: product type id %d does not exist", ErrNotFound, id)
		}
		return productType.ID, nil
	}
	productType, err := s.Catalog.GetProductTypeByName(ctx, value)
	if err != nil {
		return 0, err
	}
	if productType == nil {
		return 0, fmt.Errorf("%w: product type %q does not exist", ErrValidation, value)
	}
	return productType.ID, nil
}

func validatePrice(price *PriceInput) error {
	if price == nil {
		return nil
	}
	if price.PriceMRP <= 0 {
		return fmt.Errorf("%w: price_mrp must be > 0", ErrValidation)
	}
	if price.PriceSale != nil && *price.PriceSale >= price.PriceMRP {
		return fmt.Errorf("%w: price_sale must be less than price_mrp", ErrValidation)
	}
	return nil
}

// Create validates and resolves everything before a single row is written,
// then persists product, price, compliance and the user-product mapping in
// one transaction.
func (s *ProductService) Create(ctx context.Context, userID uint, input *CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}

	brandID, err := s.resolveBrand(ctx, input.Brand)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}
	productTypeID, err := s.resolveProductType(ctx, input.ProductType)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		BrandID:       brandID,
		CategoryID:    categoryID,
		ProductTypeID: productTypeID,
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		SKU:           input.SKU,
		IsActive:      true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		if input.Price != nil {
			price := models.ProductPrice{
				ProductID: product.ID,
				PriceMRP:  input.Price.PriceMRP,
				PriceSale: input.Price.PriceSale,
				Currency:  input.Price.Currency,
				ValidFrom: input.Price.ValidFrom,
				ValidTo:   input.Price.ValidTo,
			}
			if price.Currency == "" {
				price.Currency = "INR"
			}
			if err := tx.Create(&price).Error; err != nil {
				return err
			}
			product.Price = &price
		}
		if input.Compliance != nil {
			compliance := models.ProductCompliance{
				ProductID:       product.ID,
				CountryOfOrigin: input.Compliance.CountryOfOrigin,
				Manufacturer:    input.Compliance.Manufacturer,
				Importer:        input.Compliance.Importer,
				NetQuantity:     input.Compliance.NetQuantity,
			}
			if err := tx.Create(&compliance).Error; err != nil {
				return err
			}
			product.Compliance = &compliance
		}
		mapping := models.UserProduct{UserID: userID, ProductID: product.ID}
		return tx.Create(&mapping).Error
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, input *UpdateProductInput) (*models.Product, error) {
	product, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}

	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if input.Brand != "" {
		if product.BrandID, err = s.resolveBrand(ctx, input.Brand); err != nil {
			return nil, err
		}
	}
	if input.Category != "" {
		if product.CategoryID, err = s.resolveCategory(ctx, input.Category); err != nil {
			return nil, err
		}
	}
	if input.ProductType != "" {
		if product.ProductTypeID, err = s.resolveProductType(ctx, input.ProductType); err != nil {
			return nil, err
		}
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Price", "Compliance", "Images").Save(product).Error; err != nil {
			return err
		}
		if input.Price != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductPrice{}).Error; err != nil {
				return err
			}
			price := models.ProductPrice{
				ProductID: product.ID,
				PriceMRP:  input.Price.PriceMRP,
				PriceSale: input.Price.PriceSale,
				Currency:  input.Price.Currency,
				ValidFrom: input.Price.ValidFrom,
				ValidTo:   input.Price.ValidTo,
			}
			if price.Currency == "" {
				price.Currency = "INR"
			}
			if err := tx.Create(&price).Error; err != nil {
				return err
			}
			product.Price = &price
		}
		if input.Compliance != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductCompliance{}).Error; err != nil {
				return err
			}
			compliance := models.ProductCompliance{
				ProductID:       product.ID,
				CountryOfOrigin: input.Compliance.CountryOfOrigin,
				Manufacturer:    input.Compliance.Manufacturer,
				Importer:        input.Compliance.Importer,
				NetQuantity:     input.Compliance.NetQuantity,
			}
			if err := tx.Create(&compliance).Error; err != nil {
				return err
			}
			product.Compliance = &compliance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product's dependents best-effort, collecting warnings,
// then deletes the product row itself. A failed dependent delete never
// blocks the final delete attempt.
func (s *ProductService) Delete(ctx context.Context, id uint) (int64, []string, error) {
	warnings := []string{}
	db := s.DB.WithContext(ctx)

	if err := db.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to delete images: %v", err))
	}
	if err := db.Where("product_id = ?", id).Delete(&models.ProductCompliance{}).Error; err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to delete compliance: %v", err))
	}
	if err := db.Where("product_id = ?", id).Delete(&models.ProductPrice{}).Error; err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to delete price: %v", err))
	}
	if err := db.Where("product_id = ?", id).Delete(&models.UserProduct{}).Error; err != nil {
		warnings = append(warnings, fmt.Sprintf("failed to delete user mapping: %v", err))
	}

	result := db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return 0, warnings, result.Error
	}
	return result.RowsAffected, warnings, nil
}
