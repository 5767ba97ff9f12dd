package transport

import "github.com/karsis/b2b-eshop/internal/models"

type CreateOrderItem struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderType          models.OrderType  `json:"orderType"`
	Items              []CreateOrderItem `json:"items"`
	ShippingAddress    *string           `json:"shippingAddress"`
	ShippingCity       *string           `json:"shippingCity"`
	ShippingPostalCode *string           `json:"shippingPostalCode"`
	Notes              *string           `json:"notes"`
}

type RegisterRequest struct {
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Phone       *string `json:"phone"`
	CompanyName string  `json:"companyName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProductListQuery struct {
	Page       int
	Limit      int
	Search     string
	CategoryID uint
	InStock    bool
	Finish     string
	WearLayer  string
	Material   string
	MinPrice   string
	MaxPrice   string
}

type PatchProductRequest struct {
	CategoryID   *uint   `json:"category_id"`
	Name         *string `json:"name"`
	SKU          *string `json:"sku"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	BasePrice    *string `json:"base_price"`
	Stock        *int    `json:"stock"`
	Unit         *string `json:"unit"`
	IsActive     *bool   `json:"is_active"`
	Finish       *string `json:"finish"`
	WearLayer    *string `json:"wear_layer"`
	Material     *string `json:"material"`
	Manufacturer *string `json:"manufacturer"`
}

type ShoppingListRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type ShoppingListItemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func NewPageMeta(page, offset, limit int, total int64) PageMeta {
	return PageMeta{
		Page:       page,
		Size:       limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
		HasPrev:    page > 1,
		HasNext:    int64(offset+limit) < total,
	}
}
