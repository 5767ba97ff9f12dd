package httpserver

import (
	"github.com/labstack/echo/v4"

	authmw "github.com/karsis/b2b-eshop/internal/middleware/auth"
)

type Deps struct {
	JWTSecret []byte

	Auth         *AuthHTTP
	Orders       *OrderHTTP
	Products     *ProductHTTP
	Categories   *CategoryHTTP
	ShoppingList *ShoppingListHTTP
	Admin        *AdminHTTP
	Search       *SearchHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)
	v1.POST("/logout", d.Auth.Logout)

	v1.GET("/products", d.Products.ListProducts)
	v1.GET("/products/filter-options", d.Products.FilterOptions)
	v1.GET("/products/:id", d.Products.GetProduct)

	v1.GET("/categories", d.Categories.ListCategories)
	v1.GET("/categories/:id", d.Categories.GetCategory)

	if d.Search != nil {
		v1.GET("/search", d.Search.Search)
	}

	auth := v1.Group("", authmw.RequireLogin(d.JWTSecret))

	auth.GET("/me", d.Auth.Me)

	auth.GET("/orders", d.Orders.ListOrders)
	auth.GET("/orders/:id", d.Orders.GetOrder)
	auth.POST("/orders", d.Orders.CreateOrder)

	auth.GET("/shopping-lists", d.ShoppingList.ListLists)
	auth.POST("/shopping-lists", d.ShoppingList.CreateList)
	auth.GET("/shopping-lists/:id", d.ShoppingList.GetList)
	auth.PATCH("/shopping-lists/:id", d.ShoppingList.UpdateList)
	auth.DELETE("/shopping-lists/:id", d.ShoppingList.DeleteList)
	auth.POST("/shopping-lists/:id/items", d.ShoppingList.AddItem)
	auth.PATCH("/shopping-lists/:id/items/:itemId", d.ShoppingList.UpdateItem)
	auth.DELETE("/shopping-lists/:id/items/:itemId", d.ShoppingList.RemoveItem)

	admin := v1.Group("/admin", authmw.RequireLogin(d.JWTSecret), authmw.AdminOnly())

	admin.GET("/users", d.Admin.ListUsers)
	admin.POST("/users/:id/approve", d.Admin.ApproveUser)
	admin.POST("/users/:id/reject", d.Admin.RejectUser)
	admin.PATCH("/users/:id/role", d.Admin.UpdateUserRole)

	admin.POST("/products", d.Products.CreateProduct)
	admin.PATCH("/products/:id", d.Products.PatchProduct)
	admin.DELETE("/products/:id", d.Products.DeleteProduct)
}
