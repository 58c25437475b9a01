package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
)

type AddressRepository struct {
	DB *gorm.DB
}

type AddressPatch struct {
	FullName     *string `json:"full_name"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Pincode      *string `json:"pincode"`
	AddressType  *string `json:"address_type"`
	Instructions *string `json:"instructions"`
}

func (p *AddressPatch) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.FullName != nil {
		cols["full_name"] = *p.FullName
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.AddressLine1 != nil {
		cols["address_line1"] = *p.AddressLine1
	}
	if p.AddressLine2 != nil {
		cols["address_line2"] = *p.AddressLine2
	}
	if p.City != nil {
		cols["city"] = *p.City
	}
	if p.State != nil {
		cols["state"] = *p.State
	}
	if p.Pincode != nil {
		cols["pincode"] = *p.Pincode
	}
	if p.AddressType != nil {
		cols["address_type"] = *p.AddressType
	}
	if p.Instructions != nil {
		cols["instructions"] = *p.Instructions
	}
	return cols
}

func (r *AddressRepository) Create(ctx context.Context, address *models.DeliveryAddress) (*models.DeliveryAddress, error) {
	if err := r.DB.WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

func (r *AddressRepository) GetByID(ctx context.Context, id uint) (*models.DeliveryAddress, error) {
	var address models.DeliveryAddress
	err := r.DB.WithContext(ctx).First(&address, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *AddressRepository) Patch(ctx context.Context, id uint, patch *AddressPatch) (int64, error) {
	cols := patch.columns()
	if len(cols) == 0 {
		return 0, nil
	}
	result := r.DB.WithContext(ctx).
		Model(&models.DeliveryAddress{}).
		Where("id = ?", id).
		Updates(cols)
	return result.RowsAffected, result.Error
}

func (r *AddressRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.DB.WithContext(ctx).Delete(&models.DeliveryAddress{}, id)
	return result.RowsAffected, result.Error
}

func (r *AddressRepository) AttachToOrder(ctx context.Context, orderID, addressID uint, addressType string) (*models.OrderDeliveryAddressMapping, error) {
	mapping := models.OrderDeliveryAddressMapping{
		OrderID:             orderID,
		DeliveryAddressID:   addressID,
		DeliveryAddressType: addressType,
	}
	if err := r.DB.WithContext(ctx).Create(&mapping).Error; err != nil {
		return nil, err
	}
	return &mapping, nil
}
