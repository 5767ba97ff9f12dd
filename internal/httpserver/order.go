package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/karsis/b2b-eshop/internal/logging"
	authmw "github.com/karsis/b2b-eshop/internal/middleware/auth"
	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/service"
	"github.com/karsis/b2b-eshop/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, user, req)
	if err != nil {
		he := httpError(err)
		if he.Code >= 500 {
			l.Error("create_order_error", "status", he.Code, "error", err)
		} else {
			l.Warn("create_order_error", "status", he.Code, "error", err)
		}
		return he
	}

	message := "Order created successfully"
	if order.OrderType == models.OrderTypeReservation {
		message = "Reservation created successfully"
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": message,
		"order":   order,
	})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	limit := parseIntDefault(c.QueryParam("limit"), 20)
	orderType := models.OrderType(c.QueryParam("order_type"))

	_, orders, meta, err := h.Svc.ListOrders(ctx, user, orderType, page, limit)
	if err != nil {
		logging.FromContext(ctx).Error("list_orders_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": orders,
		"meta": meta,
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Svc.GetOrder(ctx, user, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}
