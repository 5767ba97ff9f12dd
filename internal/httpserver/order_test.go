package httpserver

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/repo"
	"github.com/karsis/b2b-eshop/internal/service"
)

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	var sqlDB *sql.DB
	sqlDB, err = gdb.DB()
	require.NoError(t, err)
	// one connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(
		&models.Company{}, &models.User{},
		&models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	))
	return gdb
}

type orderTestEnv struct {
	e       *echo.Echo
	handler *OrderHTTP
	gdb     *gorm.DB
	user    models.AuthUser
	product models.Product
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()

	gdb := newHandlerDB(t)

	company := models.Company{Name: "Firma s.r.o.", IsActive: true, Country: "Czech Republic"}
	require.NoError(t, gdb.Create(&company).Error)
	user := models.User{
		CompanyID:    company.ID,
		FullName:     "Jana Novakova",
		Email:        "jana@firma.cz",
		PasswordHash: "x",
		Role:         "customer",
		IsActive:     true,
		IsApproved:   true,
	}
	require.NoError(t, gdb.Create(&user).Error)

	category := models.Category{Name: "Flooring", Slug: "flooring", IsActive: true}
	require.NoError(t, gdb.Create(&category).Error)

	product := models.Product{
		CategoryID: category.ID,
		Name:       "Oak Vinyl Plank",
		SKU:        "SKU-A",
		Slug:       "oak-vinyl-plank",
		BasePrice:  decimal.RequireFromString("450.00"),
		Stock:      100,
		Unit:       "m2",
		IsActive:   true,
	}
	require.NoError(t, gdb.Create(&product).Error)

	r := &repo.GormRepo{DB: gdb}
	svc := &service.OrderService{Repo: r, Currency: "CZK", Country: "Czech Republic"}
	return &orderTestEnv{
		e:       echo.New(),
		handler: &OrderHTTP{Svc: svc},
		gdb:     gdb,
		user:    models.AuthUser{UserID: user.ID, CompanyID: company.ID, Role: user.Role},
		product: product,
	}
}

func (env *orderTestEnv) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.Set("userID", env.user.UserID)
	c.Set("companyID", env.user.CompanyID)
	c.Set("role", env.user.Role)
	return c, rec
}

func TestCreateOrderHandler_Created(t *testing.T) {
	env := newOrderTestEnv(t)

	body := fmt.Sprintf(`{"orderType":"purchase","items":[{"productId":%d,"quantity":2}]}`, env.product.ID)
	c, rec := env.request(http.MethodPost, "/api/v1/orders", body)

	require.NoError(t, env.handler.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Order   struct {
			OrderNumber   string  `json:"order_number"`
			Status        string  `json:"status"`
			PaymentStatus *string `json:"payment_status"`
			TotalAmount   string  `json:"total_amount"`
			Items         []struct {
				Subtotal string `json:"subtotal"`
			} `json:"items"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Order created successfully", resp.Message)
	assert.Equal(t, fmt.Sprintf("ORD-%d-00001", time.Now().UTC().Year()), resp.Order.OrderNumber)
	assert.Equal(t, "pending_sync", resp.Order.Status)
	require.NotNil(t, resp.Order.PaymentStatus)
	assert.Equal(t, "pending", *resp.Order.PaymentStatus)
	total := decimal.RequireFromString(resp.Order.TotalAmount)
	assert.True(t, total.Equal(decimal.RequireFromString("900.00")), "total = %s", total)
	require.Len(t, resp.Order.Items, 1)
	subtotal := decimal.RequireFromString(resp.Order.Items[0].Subtotal)
	assert.True(t, subtotal.Equal(decimal.RequireFromString("900.00")))
}

func TestCreateOrderHandler_ReservationMessage(t *testing.T) {
	env := newOrderTestEnv(t)

	body := fmt.Sprintf(`{"orderType":"reservation","items":[{"productId":%d,"quantity":1}]}`, env.product.ID)
	c, rec := env.request(http.MethodPost, "/api/v1/orders", body)

	require.NoError(t, env.handler.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Reservation created successfully")
}

func TestCreateOrderHandler_EmptyItemsIsBadRequest(t *testing.T) {
	env := newOrderTestEnv(t)

	c, _ := env.request(http.MethodPost, "/api/v1/orders", `{"orderType":"purchase","items":[]}`)

	err := env.handler.CreateOrder(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "order must contain at least one item", he.Message)
}

func TestCreateOrderHandler_InsufficientStockIsBadRequest(t *testing.T) {
	env := newOrderTestEnv(t)

	body := fmt.Sprintf(`{"orderType":"purchase","items":[{"productId":%d,"quantity":500}]}`, env.product.ID)
	c, _ := env.request(http.MethodPost, "/api/v1/orders", body)

	err := env.handler.CreateOrder(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, he.Message, "Oak Vinyl Plank")
}

func TestCreateOrderHandler_UnknownProductIsBadRequest(t *testing.T) {
	env := newOrderTestEnv(t)

	c, _ := env.request(http.MethodPost, "/api/v1/orders", `{"orderType":"purchase","items":[{"productId":9999,"quantity":1}]}`)

	err := env.handler.CreateOrder(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateOrderHandler_MissingIdentityIsUnauthorized(t *testing.T) {
	env := newOrderTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	err := env.handler.CreateOrder(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestGetOrderHandler_NotFound(t *testing.T) {
	env := newOrderTestEnv(t)

	c, _ := env.request(http.MethodGet, "/api/v1/orders/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := env.handler.GetOrder(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestListOrdersHandler_Empty(t *testing.T) {
	env := newOrderTestEnv(t)

	c, rec := env.request(http.MethodGet, "/api/v1/orders", "")

	require.NoError(t, env.handler.ListOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []json.RawMessage `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
	assert.Zero(t, resp.Meta.Total)
}
