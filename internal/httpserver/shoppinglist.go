package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/karsis/b2b-eshop/internal/middleware/auth"
	"github.com/karsis/b2b-eshop/internal/service"
	"github.com/karsis/b2b-eshop/internal/transport"
)

type ShoppingListHTTP struct {
	Svc *service.ShoppingListService
}

func (h *ShoppingListHTTP) ListLists(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	lists, err := h.Svc.ListLists(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": lists})
}

func (h *ShoppingListHTTP) GetList(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	list, err := h.Svc.GetList(c.Request().Context(), user, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

func (h *ShoppingListHTTP) CreateList(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.ShoppingListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	list, err := h.Svc.CreateList(c.Request().Context(), user, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Shopping list created successfully",
		"data":    list,
	})
}

func (h *ShoppingListHTTP) UpdateList(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.ShoppingListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	list, err := h.Svc.UpdateList(c.Request().Context(), user, id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Shopping list updated successfully",
		"data":    list,
	})
}

func (h *ShoppingListHTTP) DeleteList(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteList(c.Request().Context(), user, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Shopping list deleted successfully"})
}

func (h *ShoppingListHTTP) AddItem(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	listID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.ShoppingListItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddItem(c.Request().Context(), user, listID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": item})
}

func (h *ShoppingListHTTP) UpdateItem(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	listID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return err
	}

	var req transport.ShoppingListItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateItem(c.Request().Context(), user, listID, itemID, req.Quantity)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": item})
}

func (h *ShoppingListHTTP) RemoveItem(c echo.Context) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	listID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveItem(c.Request().Context(), user, listID, itemID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
