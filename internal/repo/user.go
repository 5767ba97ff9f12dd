package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/karsis/b2b-eshop/internal/models"
)

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).
		Preload("Company").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).
		Preload("Company").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateCompany and CreateUser take an explicit tx handle so registration
// can persist the company and its first user atomically.
func (r *GormRepo) CreateCompany(tx *gorm.DB, company *models.Company) error {
	return tx.Create(company).Error
}

func (r *GormRepo) CreateUser(tx *gorm.DB, user *models.User) error {
	return tx.Create(user).Error
}

func (r *GormRepo) SaveUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

type UserFilter struct {
	IsApproved *bool
	Role       string
}

func (r *GormRepo) ListUsers(ctx context.Context, f UserFilter) ([]models.User, error) {
	q := r.DB.WithContext(ctx).Model(&models.User{}).Preload("Company")
	if f.IsApproved != nil {
		q = q.Where("is_approved = ?", *f.IsApproved)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}

	var users []models.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
