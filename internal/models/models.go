package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypePurchase    OrderType = "purchase"
	OrderTypeReservation OrderType = "reservation"
)

func (t OrderType) Valid() bool {
	return t == OrderTypePurchase || t == OrderTypeReservation
}

type OrderStatus string

const (
	OrderStatusPendingSync OrderStatus = "pending_sync"
	OrderStatusSynced      OrderStatus = "synced"
	OrderStatusFailed      OrderStatus = "failed"
	OrderStatusProcessing  OrderStatus = "processing"
	OrderStatusCompleted   OrderStatus = "completed"
	OrderStatusCancelled   OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Company struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string    `gorm:"not null"                 json:"name"`
	RegistrationNumber *string   `json:"registration_number"`
	TaxID              *string   `json:"tax_id"`
	Address            *string   `json:"address"`
	City               *string   `json:"city"`
	PostalCode         *string   `json:"postal_code"`
	Country            string    `gorm:"not null"                 json:"country"`
	Phone              *string   `json:"phone"`
	Email              *string   `json:"email"`
	IsActive           bool      `gorm:"default:true"             json:"is_active"`
	ErpCustomerID      *string   `json:"erp_customer_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	CompanyID    uint      `gorm:"index;not null"            json:"company_id"`
	FullName     string    `gorm:"not null"                  json:"full_name"`
	Email        string    `gorm:"unique;not null"           json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Phone        *string   `json:"phone"`
	Role         string    `gorm:"not null;default:customer" json:"role"`
	IsActive     bool      `gorm:"default:true"              json:"is_active"`
	IsApproved   bool      `gorm:"default:false"             json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// AuthUser is the authenticated caller, extracted from the token by the auth
// middleware and passed explicitly into services.
type AuthUser struct {
	UserID    uint
	CompanyID uint
	Role      string
}

type Category struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Slug         string    `gorm:"unique;not null"          json:"slug"`
	Description  *string   `json:"description"`
	DisplayOrder int       `gorm:"default:0"                json:"display_order"`
	IsActive     bool      `gorm:"default:true"             json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

type Product struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	CategoryID   uint            `gorm:"index;not null"              json:"category_id"`
	Name         string          `gorm:"not null"                    json:"name"`
	SKU          string          `gorm:"column:sku;unique;not null"  json:"sku"`
	Slug         string          `gorm:"unique;not null"             json:"slug"`
	Description  *string         `json:"description"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	Stock        int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Unit         string          `gorm:"not null"                    json:"unit"`
	IsActive     bool            `gorm:"default:true"                json:"is_active"`
	Finish       *string         `json:"finish"`
	WearLayer    *string         `json:"wear_layer"`
	Material     *string         `json:"material"`
	Manufacturer *string         `json:"manufacturer"`
	ErpProductID *string         `json:"erp_product_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// ProductAttributes is the attribute bag frozen onto an order item at
// creation time. Stored as a JSON column.
type ProductAttributes struct {
	Finish    *string `json:"finish"`
	WearLayer *string `json:"wear_layer"`
	Material  *string `json:"material"`
}

func (a ProductAttributes) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *ProductAttributes) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = ProductAttributes{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("product attributes: cannot scan %T", src)
	}
}

type Order struct {
	ID                   uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	UserID               uint            `gorm:"index;not null"               json:"user_id"`
	CompanyID            uint            `gorm:"index;not null"               json:"company_id"`
	OrderNumber          string          `gorm:"uniqueIndex;size:50;not null" json:"order_number"`
	OrderType            OrderType       `gorm:"size:20;not null"             json:"order_type"`
	Status               OrderStatus     `gorm:"size:20;not null;default:pending_sync" json:"status"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"total_amount"`
	Currency             string          `gorm:"size:10;not null"             json:"currency"`
	PaymentStatus        *PaymentStatus  `gorm:"size:20"                      json:"payment_status"`
	PaymentMethod        *string         `json:"payment_method"`
	PaymentTransactionID *string         `json:"payment_transaction_id"`
	ShippingAddress      *string         `json:"shipping_address"`
	ShippingCity         *string         `json:"shipping_city"`
	ShippingPostalCode   *string         `json:"shipping_postal_code"`
	ShippingCountry      *string         `json:"shipping_country"`
	Notes                *string         `json:"notes"`
	ErpOrderID           *string         `json:"erp_order_id"`
	SyncRetries          int             `gorm:"not null;default:0"           json:"sync_retries"`
	LastSyncAttempt      *time.Time      `json:"last_sync_attempt"`
	SyncErrorMessage     *string         `json:"sync_error_message"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	Items   []OrderItem `gorm:"foreignKey:OrderID"   json:"items,omitempty"`
	Company *Company    `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

type OrderItem struct {
	ID                uint              `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderID           uint              `gorm:"index;not null"               json:"order_id"`
	ProductID         uint              `gorm:"index;not null"               json:"product_id"`
	ProductName       string            `gorm:"not null"                     json:"product_name"`
	ProductSKU        string            `gorm:"column:product_sku;not null"  json:"product_sku"`
	Quantity          int               `gorm:"not null;check:quantity > 0"  json:"quantity"`
	UnitPrice         decimal.Decimal   `gorm:"type:decimal(10,2);not null"  json:"unit_price"`
	Subtotal          decimal.Decimal   `gorm:"type:decimal(10,2);not null"  json:"subtotal"`
	Unit              string            `gorm:"not null"                     json:"unit"`
	ProductAttributes ProductAttributes `gorm:"type:json"                    json:"product_attributes"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type ShoppingList struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index;not null"           json:"user_id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Items []ShoppingListItem `gorm:"foreignKey:ShoppingListID" json:"items,omitempty"`
}

type ShoppingListItem struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	ShoppingListID uint      `gorm:"index;not null"               json:"shopping_list_id"`
	ProductID      uint      `gorm:"not null"                     json:"product_id"`
	Quantity       int       `gorm:"default:1;check:quantity > 0" json:"quantity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
