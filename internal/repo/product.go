package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) productListQuery(ctx context.Context, q transport.ProductListQuery) *gorm.DB {
	db := r.DB.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)

	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if q.CategoryID != 0 {
		db = db.Where("category_id = ?", q.CategoryID)
	}
	if q.InStock {
		db = db.Where("stock > 0")
	}
	if q.Finish != "" {
		db = db.Where("finish = ?", q.Finish)
	}
	if q.WearLayer != "" {
		db = db.Where("wear_layer = ?", q.WearLayer)
	}
	if q.Material != "" {
		db = db.Where("material = ?", q.Material)
	}
	if q.MinPrice != "" {
		db = db.Where("base_price >= ?", q.MinPrice)
	}
	if q.MaxPrice != "" {
		db = db.Where("base_price <= ?", q.MaxPrice)
	}
	return db
}

func (r *GormRepo) ListProducts(ctx context.Context, q transport.ProductListQuery, offset, limit int) (int64, []models.Product, error) {
	base := r.productListQuery(ctx, q)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := base.Preload("Category").
		Order("name ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// FilterOptions returns the distinct attribute values used for storefront
// filter dropdowns.
func (r *GormRepo) FilterOptions(ctx context.Context) (finishes, wearLayers, materials []string, err error) {
	db := r.DB.WithContext(ctx).Model(&models.Product{})

	if err = db.Distinct("finish").Where("finish IS NOT NULL").Order("finish").Pluck("finish", &finishes).Error; err != nil {
		return nil, nil, nil, err
	}
	db = r.DB.WithContext(ctx).Model(&models.Product{})
	if err = db.Distinct("wear_layer").Where("wear_layer IS NOT NULL").Order("wear_layer").Pluck("wear_layer", &wearLayers).Error; err != nil {
		return nil, nil, nil, err
	}
	db = r.DB.WithContext(ctx).Model(&models.Product{})
	if err = db.Distinct("material").Where("material IS NOT NULL").Order("material").Pluck("material", &materials).Error; err != nil {
		return nil, nil, nil, err
	}
	return finishes, wearLayers, materials, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
