package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karsis/b2b-eshop/internal/logging"
	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/repo"
	"github.com/karsis/b2b-eshop/internal/transport"
	"github.com/karsis/b2b-eshop/internal/util"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Currency string
	Country  string
}

// CreateOrder runs the whole order placement inside one transaction: order
// number, per-line stock and price validation, header insert, item inserts.
// Any failure rolls the transaction back so no partial order is ever
// visible. Product stock is read for validation but never decremented here.
func (s *OrderService) CreateOrder(ctx context.Context, user models.AuthUser, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create_order", "user_id", user.UserID)

	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !req.OrderType.Valid() {
		return nil, fmt.Errorf("%w: order type must be purchase or reservation", ErrValidation)
	}

	var order *models.Order
	err := s.Repo.Transaction(ctx, func(tx *gorm.DB) error {
		orderNumber, err := nextOrderNumber(s.Repo, tx, time.Now().UTC())
		if err != nil {
			return err
		}

		items, total, err := s.priceLines(tx, req.Items)
		if err != nil {
			return err
		}

		order = &models.Order{
			UserID:             user.UserID,
			CompanyID:          user.CompanyID,
			OrderNumber:        orderNumber,
			OrderType:          req.OrderType,
			Status:             models.OrderStatusPendingSync,
			TotalAmount:        total,
			Currency:           s.Currency,
			ShippingAddress:    req.ShippingAddress,
			ShippingCity:       req.ShippingCity,
			ShippingPostalCode: req.ShippingPostalCode,
			ShippingCountry:    &s.Country,
			Notes:              req.Notes,
			SyncRetries:        0,
		}
		if req.OrderType == models.OrderTypePurchase {
			ps := models.PaymentStatusPending
			order.PaymentStatus = &ps
		}

		if err := s.Repo.CreateOrder(tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.Repo.CreateOrderItems(tx, items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		return nil
	})
	if err != nil {
		l.Warn("create_order_failed", "error", err)
		return nil, err
	}

	// Items are immutable once committed, so a read outside the transaction
	// is safe.
	items, err := s.Repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("reload order items: %w", err)
	}
	order.Items = items

	l.Info("create_order_success", "order_id", order.ID, "order_number", order.OrderNumber, "total", order.TotalAmount)
	return order, nil
}

// priceLines validates every requested line against the catalog and builds
// the immutable snapshots. Prices come from the store as decimals, never
// through binary floating point.
func (s *OrderService) priceLines(tx *gorm.DB, lines []transport.CreateOrderItem) ([]models.OrderItem, decimal.Decimal, error) {
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}

		product, err := s.Repo.FindProductForOrder(tx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, fmt.Errorf("%w: id %d", ErrProductNotFound, line.ProductID)
			}
			return nil, decimal.Zero, fmt.Errorf("find product %d: %w", line.ProductID, err)
		}

		if product.Stock < line.Quantity {
			return nil, decimal.Zero, fmt.Errorf("%w for product: %s", ErrInsufficientStock, product.Name)
		}

		subtotal := product.BasePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)

		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   product.BasePrice,
			Subtotal:    subtotal,
			Unit:        product.Unit,
			ProductAttributes: models.ProductAttributes{
				Finish:    product.Finish,
				WearLayer: product.WearLayer,
				Material:  product.Material,
			},
		})
	}
	return items, total, nil
}

func (s *OrderService) ListOrders(ctx context.Context, user models.AuthUser, orderType models.OrderType, page, size int) (int64, []models.Order, transport.PageMeta, error) {
	offset, limit := util.Calculate(page, size)
	total, orders, err := s.Repo.ListOrders(ctx, user.UserID, orderType, offset, limit)
	if err != nil {
		return 0, nil, transport.PageMeta{}, err
	}
	return total, orders, transport.NewPageMeta(page, offset, limit, total), nil
}

func (s *OrderService) GetOrder(ctx context.Context, user models.AuthUser, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id, user.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}
