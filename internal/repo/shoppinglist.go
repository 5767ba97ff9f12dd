package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/karsis/b2b-eshop/internal/models"
)

func (r *GormRepo) ListShoppingLists(ctx context.Context, userID uint) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items.Product").
		Order("updated_at DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *GormRepo) GetShoppingList(ctx context.Context, id, userID uint) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Items.Product").
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *GormRepo) CreateShoppingList(ctx context.Context, list *models.ShoppingList) error {
	return r.DB.WithContext(ctx).Create(list).Error
}

func (r *GormRepo) SaveShoppingList(ctx context.Context, list *models.ShoppingList) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(list).Error
}

func (r *GormRepo) DeleteShoppingList(ctx context.Context, id, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).
			Delete(&models.ShoppingList{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("shopping_list_id = ?", id).
			Delete(&models.ShoppingListItem{}).Error
	})
}

func (r *GormRepo) FindShoppingListItem(ctx context.Context, listID, productID uint) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	if err := r.DB.WithContext(ctx).
		Where("shopping_list_id = ? AND product_id = ?", listID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateShoppingListItem(ctx context.Context, item *models.ShoppingListItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveShoppingListItem(ctx context.Context, item *models.ShoppingListItem) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *GormRepo) DeleteShoppingListItem(ctx context.Context, listID, itemID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND shopping_list_id = ?", itemID, listID).
		Delete(&models.ShoppingListItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
