package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/karsis/b2b-eshop/internal/logging"
	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/mykafka"
	"github.com/karsis/b2b-eshop/internal/service"
	"github.com/karsis/b2b-eshop/internal/transport"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func (h *ProductHTTP) publish(c echo.Context, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	q := transport.ProductListQuery{
		Page:       parseIntDefault(c.QueryParam("page"), 1),
		Limit:      parseIntDefault(c.QueryParam("limit"), 20),
		Search:     c.QueryParam("search"),
		CategoryID: uint(parseIntDefault(c.QueryParam("category_id"), 0)),
		InStock:    c.QueryParam("in_stock") == "true",
		Finish:     c.QueryParam("finish"),
		WearLayer:  c.QueryParam("wear_layer"),
		Material:   c.QueryParam("material"),
		MinPrice:   c.QueryParam("min_price"),
		MaxPrice:   c.QueryParam("max_price"),
	}

	_, items, meta, err := h.Svc.ListProducts(c.Request().Context(), q)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("list_products_error", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": meta,
	})
}

func (h *ProductHTTP) FilterOptions(c echo.Context) error {
	opts, err := h.Svc.FilterOptions(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("filter_options_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, opts)
}

type createProductRequest struct {
	CategoryID   uint    `json:"category_id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Slug         string  `json:"slug"`
	Description  *string `json:"description"`
	BasePrice    string  `json:"base_price"`
	Stock        int     `json:"stock"`
	Unit         string  `json:"unit"`
	Finish       *string `json:"finish"`
	WearLayer    *string `json:"wear_layer"`
	Material     *string `json:"material"`
	Manufacturer *string `json:"manufacturer"`
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	price, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	product := &models.Product{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		SKU:          req.SKU,
		Slug:         req.Slug,
		Description:  req.Description,
		BasePrice:    price,
		Stock:        req.Stock,
		Unit:         req.Unit,
		IsActive:     true,
		Finish:       req.Finish,
		WearLayer:    req.WearLayer,
		Material:     req.Material,
		Manufacturer: req.Manufacturer,
	}

	if err := h.Svc.CreateProduct(c.Request().Context(), product); err != nil {
		return httpError(err)
	}

	h.publish(c, product.SKU, map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
		"sku":        product.SKU,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.PatchProduct(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}

	h.publish(c, product.SKU, map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	h.publish(c, c.Param("id"), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}
