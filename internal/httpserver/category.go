package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/karsis/b2b-eshop/internal/logging"
	"github.com/karsis/b2b-eshop/internal/service"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) ListCategories(c echo.Context) error {
	categories, err := h.Svc.ListCategories(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("list_categories_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHTTP) GetCategory(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.Svc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}
