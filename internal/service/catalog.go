package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/repo"
	"github.com/karsis/b2b-eshop/internal/transport"
	"github.com/karsis/b2b-eshop/internal/util"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, q transport.ProductListQuery) (int64, []models.Product, transport.PageMeta, error) {
	offset, limit := util.Calculate(q.Page, q.Limit)
	total, items, err := s.Repo.ListProducts(ctx, q, offset, limit)
	if err != nil {
		return 0, nil, transport.PageMeta{}, err
	}
	return total, items, transport.NewPageMeta(q.Page, offset, limit, total), nil
}

func (s *CatalogService) FilterOptions(ctx context.Context) (map[string][]string, error) {
	finishes, wearLayers, materials, err := s.Repo.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}
	return map[string][]string{
		"finishes":   finishes,
		"wearLayers": wearLayers,
		"materials":  materials,
	}, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.BasePrice.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if product.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	return s.Repo.CreateProduct(ctx, product)
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.BasePrice != nil {
		price, err := decimal.NewFromString(*req.BasePrice)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid price", ErrValidation)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		product.BasePrice = price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
		}
		product.Stock = *req.Stock
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.Finish != nil {
		product.Finish = req.Finish
	}
	if req.WearLayer != nil {
		product.WearLayer = req.WearLayer
	}
	if req.Material != nil {
		product.Material = req.Material
	}
	if req.Manufacturer != nil {
		product.Manufacturer = req.Manufacturer
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

type CategoryService struct {
	Repo *repo.GormRepo
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return nil, err
	}
	return category, nil
}
