package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/models"
	"github.com/stitchkart/tailor_shop/internal/repo"
)

type OrderService struct {
	DB         *gorm.DB
	Users      *repo.UserRepository
	Businesses *repo.BusinessRepository
	Orders     *repo.OrderRepository
}

type OrderItemInput struct {
	ItemType        string  `json:"item_type"`
	ProductCode     string  `json:"product_code"`
	ShopID          uint    `json:"shop_id"`
	TailorID        uint    `json:"tailor_id"`
	Quantity        int     `json:"quantity"`
	Unit            string  `json:"unit"`
	UnitPrice       float64 `json:"unit_price"`
	MeasurementDate string  `json:"measurement_date"`
	MeasurementSlot string  `json:"measurement_slot"`
	StitchingDate   string  `json:"stitching_date"`
}

type OrderAddressInput struct {
	AddressID uint   `json:"address_id"`
	Type      string `json:"type"`

	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Instructions string `json:"instructions"`
}

type CreateOrderInput struct {
	CustomerID    uint                `json:"customer_id"`
	OrderType     string              `json:"order_type"`
	TotalAmount   *float64            `json:"total_amount"`
	PaymentStatus string              `json:"payment_status"`
	AdvancePaid   float64             `json:"advance_paid"`
	DeliveryDate  *time.Time          `json:"delivery_date"`
	Notes         string              `json:"notes"`
	Items         []OrderItemInput    `json:"items"`
	Addresses     []OrderAddressInput `json:"addresses"`
}

// CreateOrder writes the order, its items, any new addresses, and the typed
// address mappings as one transaction. Item totals are always computed here;
// the order total falls back to the sum of its items when not supplied.
func (s *OrderService) CreateOrder(ctx context.Context, createdBy uint, input *CreateOrderInput) (*models.Order, error) {
	if input.CustomerID == 0 {
		return nil, fmt.Errorf("%w: customer_id required", ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	var total float64
	items := make([]models.OrderItem, 0, len(input.Items))
	for i := range input.Items {
		in := &input.Items[i]
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if in.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit_price must be >= 0", ErrValidation)
		}

		itemTotal := float64(in.Quantity) * in.UnitPrice
		total += itemTotal
		items = append(items, models.OrderItem{
			ItemType:        in.ItemType,
			ProductCode:     in.ProductCode,
			ShopID:          in.ShopID,
			TailorID:        in.TailorID,
			Quantity:        in.Quantity,
			Unit:            in.Unit,
			UnitPrice:       in.UnitPrice,
			ItemTotal:       itemTotal,
			MeasurementDate: in.MeasurementDate,
			MeasurementSlot: in.MeasurementSlot,
			StitchingDate:   in.StitchingDate,
		})
	}
	if input.TotalAmount != nil {
		total = *input.TotalAmount
	}

	for i := range input.Addresses {
		addr := &input.Addresses[i]
		if addr.Type == "" {
			return nil, fmt.Errorf("%w: address type required", ErrValidation)
		}
		if addr.AddressID == 0 && (addr.FullName == "" || addr.Phone == "" || addr.AddressLine1 == "") {
			return nil, fmt.Errorf("%w: address requires full_name, phone and address_line1", ErrValidation)
		}
	}

	order := &models.Order{
		CustomerID:    input.CustomerID,
		OrderDate:     time.Now(),
		OrderType:     input.OrderType,
		TotalAmount:   total,
		PaymentStatus: input.PaymentStatus,
		AdvancePaid:   input.AdvancePaid,
		DeliveryDate:  input.DeliveryDate,
		Notes:         input.Notes,
		CreatedBy:     createdBy,
		Items:         items,
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = "Pending"
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range input.Addresses {
			in := &input.Addresses[i]

			addressID := in.AddressID
			if addressID == 0 {
				address := models.DeliveryAddress{
					FullName:     in.FullName,
					Phone:        in.Phone,
					AddressLine1: in.AddressLine1,
					AddressLine2: in.AddressLine2,
					City:         in.City,
					State:        in.State,
					Pincode:      in.Pincode,
					AddressType:  in.Type,
					Instructions: in.Instructions,
				}
				if err := tx.Create(&address).Error; err != nil {
					return err
				}
				addressID = address.ID
			} else {
				var existing models.DeliveryAddress
				if err := tx.First(&existing, addressID).Error; err != nil {
					return fmt.Errorf("%w: delivery address %d", ErrNotFound, addressID)
				}
			}

			mapping := models.OrderDeliveryAddressMapping{
				OrderID:             order.ID,
				DeliveryAddressID:   addressID,
				DeliveryAddressType: in.Type,
			}
			if err := tx.Create(&mapping).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// VisibleOrders is the role-merged order view for a tailor/seller user.
type VisibleOrders struct {
	Roles        []string       `json:"roles"`
	BusinessID   uint           `json:"businessId"`
	BusinessName string         `json:"businessName"`
	Orders       []models.Order `json:"orders"`
}

// OrdersForUser resolves role-based order visibility. Tailor-sourced orders
// take precedence over seller-sourced duplicates of the same id; a second
// dedup pass guards against duplicates the item join itself may produce.
// Users without the Tailor or Seller role are rejected outright, whatever
// other roles they hold.
func (s *OrderService) OrdersForUser(ctx context.Context, userID uint, date string) (*VisibleOrders, error) {
	roles, err := s.Users.RoleNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: user has no roles", ErrForbidden)
	}

	hasTailor := containsRole(roles, models.RoleTailor)
	hasSeller := containsRole(roles, models.RoleSeller)
	if !hasTailor && !hasSeller {
		return nil, fmt.Errorf("%w: requires Tailor or Seller role", ErrForbidden)
	}

	business, err := s.Businesses.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, fmt.Errorf("%w: no business for user %d", ErrNotFound, userID)
	}

	seen := map[uint]bool{}
	merged := []models.Order{}

	if hasTailor {
		tailorOrders, err := s.Orders.ListByTailor(ctx, business.ID, date)
		if err != nil {
			return nil, err
		}
		for _, order := range tailorOrders {
			if !seen[order.ID] {
				seen[order.ID] = true
				merged = append(merged, order)
			}
		}
	}

	if hasSeller {
		shopOrders, err := s.Orders.ListByShop(ctx, business.ID, date)
		if err != nil {
			return nil, err
		}
		for _, order := range shopOrders {
			if !seen[order.ID] {
				seen[order.ID] = true
				merged = append(merged, order)
			}
		}
	}

	merged = dedupeOrders(merged)

	for i := range merged {
		items, err := s.Orders.ListItems(ctx, merged[i].ID)
		if err != nil {
			return nil, err
		}
		merged[i].Items = items
	}

	return &VisibleOrders{
		Roles:        roles,
		BusinessID:   business.ID,
		BusinessName: business.ShopName,
		Orders:       merged,
	}, nil
}

func containsRole(roles []string, name string) bool {
	for _, r := range roles {
		if r == name {
			return true
		}
	}
	return false
}

func dedupeOrders(orders []models.Order) []models.Order {
	seen := map[uint]bool{}
	out := orders[:0]
	for _, order := range orders {
		if seen[order.ID] {
			continue
		}
		seen[order.ID] = true
		out = append(out, order)
	}
	return out
}
