package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// one in-memory database per test, shared by every connection
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ShoppingList{},
		&models.ShoppingListItem{},
	))
	return gdb
}

func newTestRepo(t *testing.T) (*repo.GormRepo, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t)
	return &repo.GormRepo{DB: gdb}, gdb
}

func seedCompanyAndUser(t *testing.T, gdb *gorm.DB) models.AuthUser {
	t.Helper()

	company := models.Company{Name: "Test s.r.o.", Country: "Czech Republic", IsActive: true}
	require.NoError(t, gdb.Create(&company).Error)

	user := models.User{
		CompanyID:    company.ID,
		FullName:     "Test Customer",
		Email:        "customer@example.com",
		PasswordHash: "x",
		Role:         "customer",
		IsActive:     true,
		IsApproved:   true,
	}
	require.NoError(t, gdb.Create(&user).Error)

	return models.AuthUser{UserID: user.ID, CompanyID: company.ID, Role: user.Role}
}

func seedCategory(t *testing.T, gdb *gorm.DB) models.Category {
	t.Helper()
	category := models.Category{Name: "Flooring", Slug: "flooring", IsActive: true}
	require.NoError(t, gdb.Create(&category).Error)
	return category
}

func strPtr(s string) *string { return &s }

func seedProduct(t *testing.T, gdb *gorm.DB, categoryID uint, name, sku, price string, stock int) models.Product {
	t.Helper()

	product := models.Product{
		CategoryID: categoryID,
		Name:       name,
		SKU:        sku,
		Slug:       sku,
		BasePrice:  decimal.RequireFromString(price),
		Stock:      stock,
		Unit:       "m2",
		IsActive:   true,
		Finish:     strPtr("matte"),
		WearLayer:  strPtr("0.55mm"),
		Material:   strPtr("vinyl"),
	}
	require.NoError(t, gdb.Create(&product).Error)
	return product
}
