package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/karsis/b2b-eshop/internal/logging"
	authmw "github.com/karsis/b2b-eshop/internal/middleware/auth"
	"github.com/karsis/b2b-eshop/internal/service"
	"github.com/karsis/b2b-eshop/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func createCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Registration successful. Waiting for admin approval.",
		"user": echo.Map{
			"id":          user.ID,
			"email":       user.Email,
			"full_name":   user.FullName,
			"is_approved": user.IsApproved,
		},
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(createCookie("accessToken", res.Token, "/", res.ExpiresAt))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   res.Token,
		"user": echo.Map{
			"id":        res.User.ID,
			"email":     res.User.Email,
			"full_name": res.User.FullName,
			"role":      res.User.Role,
			"company": echo.Map{
				"id":   res.User.Company.ID,
				"name": res.User.Company.Name,
			},
		},
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	me, err := h.Svc.Me(ctx, user.UserID)
	if err != nil {
		logging.FromContext(ctx).Error("me_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": me})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(createCookie("accessToken", "", "/", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}
