package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karsis/b2b-eshop/internal/models"
	"github.com/karsis/b2b-eshop/internal/repo"
	"github.com/karsis/b2b-eshop/internal/transport"
)

var testJWTSecret = []byte("test-secret")

func newAuthServices(t *testing.T) (*AuthService, *AdminService) {
	t.Helper()
	r, _ := newTestRepo(t)
	auth := &AuthService{Repo: r, JWTSecret: testJWTSecret, Country: "Czech Republic"}
	admin := &AdminService{Repo: r}
	return auth, admin
}

func registerReq() transport.RegisterRequest {
	return transport.RegisterRequest{
		FullName:    "Jana Novakova",
		Email:       "jana@firma.cz",
		Password:    "s3cretpass",
		CompanyName: "Firma s.r.o.",
	}
}

func TestRegister_CreatesCompanyAndUnapprovedUser(t *testing.T) {
	auth, _ := newAuthServices(t)

	user, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.False(t, user.IsApproved)
	assert.True(t, user.IsActive)
	assert.Equal(t, "customer", user.Role)
	assert.NotZero(t, user.CompanyID)
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)

	company := &models.Company{}
	require.NoError(t, auth.Repo.DB.First(company, user.CompanyID).Error)
	assert.Equal(t, "Firma s.r.o.", company.Name)
	assert.Equal(t, "Czech Republic", company.Country)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	auth, _ := newAuthServices(t)

	_, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), registerReq())
	require.ErrorIs(t, err, ErrConflict)
}

func TestRegister_MissingFields(t *testing.T) {
	auth, _ := newAuthServices(t)

	req := registerReq()
	req.CompanyName = ""
	_, err := auth.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrValidation)
}

func TestLogin_PendingApprovalIsForbidden(t *testing.T) {
	auth, _ := newAuthServices(t)

	_, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = auth.Login(context.Background(), transport.LoginRequest{
		Email:    "jana@firma.cz",
		Password: "s3cretpass",
	})
	require.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, err.Error(), "pending approval")
}

func TestLogin_AfterApproval(t *testing.T) {
	auth, admin := newAuthServices(t)

	user, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = admin.ApproveUser(context.Background(), user.ID)
	require.NoError(t, err)

	res, err := auth.Login(context.Background(), transport.LoginRequest{
		Email:    "jana@firma.cz",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, user.ID, res.User.ID)

	parsed, err := jwt.Parse(res.Token, func(tok *jwt.Token) (any, error) {
		return testJWTSecret, nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, user.ID, claims["sub"])
	assert.EqualValues(t, user.CompanyID, claims["company_id"])
	assert.Equal(t, "customer", claims["role"])
}

func TestLogin_BadPassword(t *testing.T) {
	auth, admin := newAuthServices(t)

	user, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)
	_, err = admin.ApproveUser(context.Background(), user.ID)
	require.NoError(t, err)

	_, err = auth.Login(context.Background(), transport.LoginRequest{
		Email:    "jana@firma.cz",
		Password: "wrongpass",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestLogin_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	auth, _ := newAuthServices(t)

	_, err := auth.Login(context.Background(), transport.LoginRequest{
		Email:    "nobody@firma.cz",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestAdmin_UpdateUserRole(t *testing.T) {
	auth, admin := newAuthServices(t)

	user, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	updated, err := admin.UpdateUserRole(context.Background(), user.ID, "sales")
	require.NoError(t, err)
	assert.Equal(t, "sales", updated.Role)

	_, err = admin.UpdateUserRole(context.Background(), user.ID, "superuser")
	require.ErrorIs(t, err, ErrValidation)
}

func TestAdmin_ListUsersByApproval(t *testing.T) {
	auth, admin := newAuthServices(t)

	first, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	second := registerReq()
	second.Email = "petr@firma.cz"
	second.FullName = "Petr Svoboda"
	_, err = auth.Register(context.Background(), second)
	require.NoError(t, err)

	_, err = admin.ApproveUser(context.Background(), first.ID)
	require.NoError(t, err)

	pending := false
	users, err := admin.ListUsers(context.Background(), repo.UserFilter{IsApproved: &pending})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "petr@firma.cz", users[0].Email)
}

func TestAdmin_RejectUserRevokesLogin(t *testing.T) {
	auth, admin := newAuthServices(t)

	user, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = admin.ApproveUser(context.Background(), user.ID)
	require.NoError(t, err)
	_, err = admin.RejectUser(context.Background(), user.ID)
	require.NoError(t, err)

	_, err = auth.Login(context.Background(), transport.LoginRequest{
		Email:    "jana@firma.cz",
		Password: "s3cretpass",
	})
	require.ErrorIs(t, err, ErrForbidden)
}
