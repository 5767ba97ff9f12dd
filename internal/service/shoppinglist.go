package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/repo"
	"github.com/karsis/b2b-eshop/internal/transport"
)

type ShoppingListService struct {
	Repo *repo.GormRepo
}

func (s *ShoppingListService) ListLists(ctx context.Context, user models.AuthUser) ([]models.ShoppingList, error) {
	return s.Repo.ListShoppingLists(ctx, user.UserID)
}

func (s *ShoppingListService) GetList(ctx context.Context, user models.AuthUser, id uint) (*models.ShoppingList, error) {
	list, err := s.Repo.GetShoppingList(ctx, id, user.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: shopping list %d", ErrNotFound, id)
		}
		return nil, err
	}
	return list, nil
}

func (s *ShoppingListService) CreateList(ctx context.Context, user models.AuthUser, req transport.ShoppingListRequest) (*models.ShoppingList, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	list := &models.ShoppingList{
		UserID:      user.UserID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.Repo.CreateShoppingList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ShoppingListService) UpdateList(ctx context.Context, user models.AuthUser, id uint, req transport.ShoppingListRequest) (*models.ShoppingList, error) {
	list, err := s.GetList(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		list.Name = req.Name
	}
	if req.Description != nil {
		list.Description = req.Description
	}
	if err := s.Repo.SaveShoppingList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ShoppingListService) DeleteList(ctx context.Context, user models.AuthUser, id uint) error {
	if err := s.Repo.DeleteShoppingList(ctx, id, user.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: shopping list %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// AddItem appends a product to the list, merging quantities when the
// product is already present.
func (s *ShoppingListService) AddItem(ctx context.Context, user models.AuthUser, listID uint, req transport.ShoppingListItemRequest) (*models.ShoppingListItem, error) {
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	list, err := s.GetList(ctx, user, listID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetProduct(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, req.ProductID)
		}
		return nil, err
	}

	item, err := s.Repo.FindShoppingListItem(ctx, list.ID, req.ProductID)
	if err == nil {
		item.Quantity += req.Quantity
		if err := s.Repo.SaveShoppingListItem(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item = &models.ShoppingListItem{
		ShoppingListID: list.ID,
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
	}
	if err := s.Repo.CreateShoppingListItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ShoppingListService) UpdateItem(ctx context.Context, user models.AuthUser, listID, itemID uint, quantity int) (*models.ShoppingListItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	list, err := s.GetList(ctx, user, listID)
	if err != nil {
		return nil, err
	}

	for i := range list.Items {
		if list.Items[i].ID == itemID {
			item := list.Items[i]
			item.Quantity = quantity
			if err := s.Repo.SaveShoppingListItem(ctx, &item); err != nil {
				return nil, err
			}
			return &item, nil
		}
	}
	return nil, fmt.Errorf("%w: item %d", ErrNotFound, itemID)
}

func (s *ShoppingListService) RemoveItem(ctx context.Context, user models.AuthUser, listID, itemID uint) error {
	list, err := s.GetList(ctx, user, listID)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteShoppingListItem(ctx, list.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: item %d", ErrNotFound, itemID)
		}
		return err
	}
	return nil
}
