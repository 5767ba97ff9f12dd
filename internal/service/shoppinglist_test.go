package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/transport"
)

func newShoppingListEnv(t *testing.T) (*ShoppingListService, *gorm.DB, models.AuthUser, models.Product) {
	t.Helper()
	r, gdb := newTestRepo(t)
	user := seedCompanyAndUser(t, gdb)
	category := seedCategory(t, gdb)
	product := seedProduct(t, gdb, category.ID, "Oak Vinyl Plank", "SKU-A", "450.00", 10)
	return &ShoppingListService{Repo: r}, gdb, user, product
}

func TestShoppingList_CreateAndGet(t *testing.T) {
	svc, _, user, _ := newShoppingListEnv(t)

	list, err := svc.CreateList(context.Background(), user, transport.ShoppingListRequest{Name: "Spring restock"})
	require.NoError(t, err)
	require.NotZero(t, list.ID)

	got, err := svc.GetList(context.Background(), user, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring restock", got.Name)

	_, err = svc.CreateList(context.Background(), user, transport.ShoppingListRequest{})
	require.ErrorIs(t, err, ErrValidation)
}

func TestShoppingList_OwnershipIsEnforced(t *testing.T) {
	svc, _, user, _ := newShoppingListEnv(t)

	list, err := svc.CreateList(context.Background(), user, transport.ShoppingListRequest{Name: "Spring restock"})
	require.NoError(t, err)

	other := models.AuthUser{UserID: user.UserID + 100, CompanyID: user.CompanyID}
	_, err = svc.GetList(context.Background(), other, list.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteList(context.Background(), other, list.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestShoppingList_AddItemMergesQuantity(t *testing.T) {
	svc, _, user, product := newShoppingListEnv(t)

	list, err := svc.CreateList(context.Background(), user, transport.ShoppingListRequest{Name: "Spring restock"})
	require.NoError(t, err)

	item, err := svc.AddItem(context.Background(), user, list.ID, transport.ShoppingListItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = svc.AddItem(context.Background(), user, list.ID, transport.ShoppingListItemRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	got, err := svc.GetList(context.Background(), user, list.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 5, got.Items[0].Quantity)
}

func TestShoppingList_AddUnknownProduct(t *testing.T) {
	svc, _, user, _ := newShoppingListEnv(t)

	list, err := svc.CreateList(context.Background(), user, transport.ShoppingListRequest{Name: "Spring restock"})
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), user, list.ID, transport.ShoppingListItemRequest{ProductID: 9999, Quantity: 1})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestShoppingList_UpdateAndRemoveItem(t *testing.T) {
	svc, _, user, product := newShoppingListEnv(t)

	list, err := svc.CreateList(context.Background(), user, transport.ShoppingListRequest{Name: "Spring restock"})
	require.NoError(t, err)

	item, err := svc.AddItem(context.Background(), user, list.ID, transport.ShoppingListItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(context.Background(), user, list.ID, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = svc.UpdateItem(context.Background(), user, list.ID, item.ID, 0)
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.RemoveItem(context.Background(), user, list.ID, item.ID))

	got, err := svc.GetList(context.Background(), user, list.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	err = svc.RemoveItem(context.Background(), user, list.ID, item.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestShoppingList_DeleteCascadesToItems(t *testing.T) {
	svc, gdb, user, product := newShoppingListEnv(t)

	list, err := svc.CreateList(context.Background(), user, transport.ShoppingListRequest{Name: "Spring restock"})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), user, list.ID, transport.ShoppingListItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteList(context.Background(), user, list.ID))

	var n int64
	require.NoError(t, gdb.Model(&models.ShoppingListItem{}).Where("shopping_list_id = ?", list.ID).Count(&n).Error)
	assert.Zero(t, n)
}
