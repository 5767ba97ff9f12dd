package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/karsis/b2b-eshop/internal/logging"
	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/repo"
)

type AdminService struct {
	Repo *repo.GormRepo
}

func (s *AdminService) ListUsers(ctx context.Context, f repo.UserFilter) ([]models.User, error) {
	return s.Repo.ListUsers(ctx, f)
}

func (s *AdminService) ApproveUser(ctx context.Context, id uint) (*models.User, error) {
	return s.setApproval(ctx, id, true)
}

func (s *AdminService) RejectUser(ctx context.Context, id uint) (*models.User, error) {
	return s.setApproval(ctx, id, false)
}

func (s *AdminService) setApproval(ctx context.Context, id uint, approved bool) (*models.User, error) {
	user, err := s.Repo.FindUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}

	user.IsApproved = approved
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("user_approval_changed", "svc", "admin.users", "user_id", id, "approved", approved)
	return user, nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, id uint, role string) (*models.User, error) {
	switch role {
	case "admin", "customer", "sales":
	default:
		return nil, fmt.Errorf("%w: invalid role", ErrValidation)
	}

	user, err := s.Repo.FindUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}

	user.Role = role
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
