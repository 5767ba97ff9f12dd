package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/karsis/b2b-eshop/internal/repo"
	"github.com/karsis/b2b-eshop/internal/service"
	"github.com/karsis/b2b-eshop/internal/transport"
)

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) ListUsers(c echo.Context) error {
	var f repo.UserFilter
	if v := c.QueryParam("is_approved"); v != "" {
		approved := v == "true" || v == "1"
		f.IsApproved = &approved
	}
	f.Role = c.QueryParam("role")

	users, err := h.Svc.ListUsers(c.Request().Context(), f)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}

func (h *AdminHTTP) ApproveUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.Svc.ApproveUser(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User approved successfully",
		"data":    user,
	})
}

func (h *AdminHTTP) RejectUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.Svc.RejectUser(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User approval revoked",
		"data":    user,
	})
}

func (h *AdminHTTP) UpdateUserRole(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateUserRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User role updated successfully",
		"data":    user,
	})
}
