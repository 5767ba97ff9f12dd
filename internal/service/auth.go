package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/karsis/b2b-eshop/internal/hash"
	"github.com/karsis/b2b-eshop/internal/logging"
	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/repo"
	"github.com/karsis/b2b-eshop/internal/transport"
)

const accessTokenTTL = 24 * time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Country   string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Register creates the company and its first user in one transaction. New
// accounts start unapproved and cannot log in until an admin approves them.
func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register", "email", req.Email)

	if req.Email == "" || req.Password == "" || req.FullName == "" || req.CompanyName == "" {
		return nil, fmt.Errorf("%w: fullName, email, password and companyName are required", ErrValidation)
	}

	if _, err := s.Repo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: pwHash,
		Phone:        req.Phone,
		Role:         "customer",
		IsActive:     true,
		IsApproved:   false,
	}

	err = s.Repo.Transaction(ctx, func(tx *gorm.DB) error {
		company := &models.Company{
			Name:     req.CompanyName,
			IsActive: true,
			Country:  s.Country,
		}
		if err := s.Repo.CreateCompany(tx, company); err != nil {
			return fmt.Errorf("create company: %w", err)
		}
		user.CompanyID = company.ID
		if err := s.Repo.CreateUser(tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		l.Error("register_error", "error", err)
		return nil, err
	}

	l.Info("register_success", "user_id", user.ID, "company_id", user.CompanyID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", req.Email)

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrValidation)
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "reason", "bad credentials")
		return nil, fmt.Errorf("%w: invalid email or password", ErrValidation)
	}
	if !user.IsApproved {
		l.Warn("login_failed", "reason", "pending approval")
		return nil, fmt.Errorf("%w: your account is pending approval", ErrForbidden)
	}
	if !user.IsActive {
		l.Warn("login_failed", "reason", "inactive account")
		return nil, fmt.Errorf("%w: your account is inactive", ErrForbidden)
	}

	exp := time.Now().Add(accessTokenTTL)
	token, err := s.SignAccessToken(user, exp)
	if err != nil {
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *AuthService) SignAccessToken(user *models.User, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"company_id": user.CompanyID,
		"role":       user.Role,
		"exp":        exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}
