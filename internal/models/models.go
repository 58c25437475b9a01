package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin          = "Admin"
	RoleCustomer       = "Customer"
	RoleSeller         = "Seller"
	RoleTailor         = "Tailor"
	RoleMeasurementBoy = "MeasurementBoy"
	RoleTaylorseller   = "Taylorseller"
)

// AllRoles is the fixed role set seeded at migration time. Role names are
// looked up, never created implicitly.
var AllRoles = []string{
	RoleAdmin,
	RoleCustomer,
	RoleSeller,
	RoleTailor,
	RoleMeasurementBoy,
	RoleTaylorseller,
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Name         string    `gorm:"not null"                 json:"name"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type UserRole struct {
	ID         uint      `gorm:"primaryKey"                          json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_role"  json:"user_id"`
	RoleID     uint      `gorm:"not null;uniqueIndex:idx_user_role"  json:"role_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

type BusinessInformation struct {
	ID          uint           `gorm:"primaryKey"     json:"id"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	ShopName    string         `gorm:"not null"       json:"shop_name"`
	Address     string         `json:"address"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	OpeningTime string         `json:"opening_time"`
	ClosingTime string         `json:"closing_time"`
	LogoURL     string         `json:"logo_url"`
	Categories  string         `json:"categories"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TailorDateAvailability marks a business day closed or open. One row per
// (business, date); writes go through an upsert.
type TailorDateAvailability struct {
	ID         uint      `gorm:"primaryKey"                              json:"id"`
	BusinessID uint      `gorm:"not null;uniqueIndex:idx_business_date"  json:"business_id"`
	Date       string    `gorm:"not null;uniqueIndex:idx_business_date"  json:"date"`
	IsClosed   bool      `json:"is_closed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TailorItemPrice struct {
	ID            uint      `gorm:"primaryKey"                              json:"id"`
	BusinessID    uint      `gorm:"not null;uniqueIndex:idx_business_item"  json:"business_id"`
	ItemID        uint      `gorm:"not null;uniqueIndex:idx_business_item"  json:"item_id"`
	Price         float64   `json:"price"`
	IsAvailable   bool      `json:"is_available"`
	EstimatedDays int       `json:"estimated_days"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Brand struct {
	ID   uint   `gorm:"primaryKey"      json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey"      json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

type ProductType struct {
	ID   uint   `gorm:"primaryKey"      json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

type Product struct {
	ID            uint               `gorm:"primaryKey"          json:"id"`
	BrandID       uint               `gorm:"index;not null"      json:"brand_id"`
	CategoryID    uint               `gorm:"index;not null"      json:"category_id"`
	ProductTypeID uint               `gorm:"index"               json:"product_type_id"`
	Name          string             `gorm:"not null"            json:"name"`
	Description   string             `json:"description"`
	SKU           string             `json:"sku"`
	IsActive      bool               `gorm:"default:true"        json:"is_active"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Price         *ProductPrice      `gorm:"foreignKey:ProductID" json:"price,omitempty"`
	Compliance    *ProductCompliance `gorm:"foreignKey:ProductID" json:"compliance,omitempty"`
	Images        []ProductImage     `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

type ProductPrice struct {
	ID        uint       `gorm:"primaryKey"           json:"id"`
	ProductID uint       `gorm:"uniqueIndex;not null" json:"product_id"`
	PriceMRP  float64    `json:"price_mrp"`
	PriceSale *float64   `json:"price_sale,omitempty"`
	Currency  string     `gorm:"default:INR"          json:"currency"`
	ValidFrom *time.Time `json:"valid_from,omitempty"`
	ValidTo   *time.Time `json:"valid_to,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type ProductCompliance struct {
	ID              uint      `gorm:"primaryKey"           json:"id"`
	ProductID       uint      `gorm:"uniqueIndex;not null" json:"product_id"`
	CountryOfOrigin string    `json:"country_of_origin"`
	Manufacturer    string    `json:"manufacturer"`
	Importer        string    `json:"importer"`
	NetQuantity     string    `json:"net_quantity"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ProductImage struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	URL       string    `gorm:"not null"       json:"url"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

type UserProduct struct {
	ID        uint      `gorm:"primaryKey"                            json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_user_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID            uint        `gorm:"primaryKey"     json:"id"`
	CustomerID    uint        `gorm:"index;not null" json:"customer_id"`
	OrderDate     time.Time   `json:"order_date"`
	OrderType     string      `json:"order_type"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentStatus string      `gorm:"default:Pending" json:"payment_status"`
	AdvancePaid   float64     `json:"advance_paid"`
	DeliveryDate  *time.Time  `json:"delivery_date,omitempty"`
	Notes         string      `json:"notes"`
	CreatedBy     uint        `json:"created_by"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type OrderItem struct {
	ID              uint      `gorm:"primaryKey"     json:"id"`
	OrderID         uint      `gorm:"index;not null" json:"order_id"`
	ItemType        string    `json:"item_type"`
	ProductCode     string    `json:"product_code"`
	ShopID          uint      `gorm:"index" json:"shop_id"`
	TailorID        uint      `gorm:"index" json:"tailor_id"`
	Quantity        int       `json:"quantity"`
	Unit            string    `json:"unit"`
	UnitPrice       float64   `json:"unit_price"`
	ItemTotal       float64   `json:"item_total"`
	Status          string    `gorm:"default:Created" json:"status"`
	MeasurementDate string    `json:"measurement_date"`
	MeasurementSlot string    `json:"measurement_slot"`
	StitchingDate   string    `json:"stitching_date"`
	IsMeasurementDone bool    `gorm:"default:false" json:"is_measurement_done"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type DeliveryAddress struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"not null"   json:"full_name"`
	Phone        string    `gorm:"not null"   json:"phone"`
	AddressLine1 string    `gorm:"not null"   json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	AddressType  string    `json:"address_type"`
	Instructions string    `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OrderDeliveryAddressMapping links an order to any number of typed
// addresses ("Delivery", "Measurement"). This mapping table is the canonical
// linkage; orders carry no address foreign key.
type OrderDeliveryAddressMapping struct {
	ID                  uint      `gorm:"primaryKey"     json:"id"`
	OrderID             uint      `gorm:"index;not null" json:"order_id"`
	DeliveryAddressID   uint      `gorm:"not null"       json:"delivery_address_id"`
	DeliveryAddressType string    `gorm:"not null"       json:"delivery_address_type"`
	CreatedAt           time.Time `json:"created_at"`
}

type Measurement struct {
	ID               uint      `gorm:"primaryKey"                          json:"id"`
	OrderItemID      uint      `gorm:"not null;uniqueIndex:idx_item_key"   json:"order_item_id"`
	MeasurementKey   string    `gorm:"not null;uniqueIndex:idx_item_key"   json:"measurement_key"`
	MeasurementValue string    `gorm:"not null"                            json:"measurement_value"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrderMeasurementBoyAssignment is written by the dispatch side; this
// service only queries it.
type OrderMeasurementBoyAssignment struct {
	ID               uint      `gorm:"primaryKey"     json:"id"`
	OrderID          uint      `gorm:"index;not null" json:"order_id"`
	MeasurementBoyID uint      `gorm:"index;not null" json:"measurement_boy_id"`
	Status           string    `gorm:"default:Assigned" json:"status"`
	AssignedAt       time.Time `json:"assigned_at"`
}
