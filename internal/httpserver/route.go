package httpserver

import (
	"net/http"

	middleware "github.com/Skotchmaster/inventory_cart/pkg/middleware/auth"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	Session        *middleware.SessionMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/refresh", d.AuthHandler.Refresh)
	api.POST("/logout", d.AuthHandler.Logout, d.Session.RequireSession)

	products := api.Group("/products", d.Session.RequireSession)
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:pid", d.CatalogHandler.GetProduct)

	admin := api.Group("/products", d.Session.RequireAdmin)
	admin.POST("", d.CatalogHandler.CreateProduct)
	admin.PUT("/:pid", d.CatalogHandler.UpdateProduct)
	admin.PATCH("/:pid/status", d.CatalogHandler.SetProductStatus)
	admin.DELETE("/:pid", d.CatalogHandler.DeleteProduct)

	carts := api.Group("/carts", d.Session.RequireSession)
	carts.POST("", d.CartHandler.CreateCart)
	carts.GET("/:cid", d.CartHandler.GetCart)
	carts.POST("/:cid/product/:pid", d.CartHandler.AddProduct)
}
