package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/inventory_cart/internal/service"
	"github.com/Skotchmaster/inventory_cart/pkg/logging"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc     *service.CartService
	Catalog *service.CatalogService
}

func (h *CartHTTP) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.create_cart")

	cart, err := h.Svc.Create(ctx)
	if err != nil {
		l.Error("create_cart_error", "status", 500, "reason", "cannot write carts", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot write carts")
	}

	l.Info("create_cart_success", "cart_id", cart.ID)
	return c.JSON(http.StatusCreated, cart)
}

// GetCart responds with the cart's lines only.
func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	id := c.Param("cid")
	cart, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "reason", "cannot read carts", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read carts")
	}
	if cart == nil {
		l.Warn("get_cart_error", "status", 404, "reason", "cart not found", "cart_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "cart not found")
	}

	return c.JSON(http.StatusOK, cart.Products)
}

func (h *CartHTTP) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_product")

	cartID, productID := c.Param("cid"), c.Param("pid")

	product, err := h.Catalog.GetByID(ctx, productID)
	if err != nil {
		l.Error("add_product_error", "status", 500, "reason", "cannot read products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read products")
	}
	if product == nil {
		l.Warn("add_product_error", "status", 404, "reason", "product not found", "product_id", productID)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	cart, err := h.Svc.AddProduct(ctx, cartID, productID)
	if err != nil {
		l.Error("add_product_error", "status", 500, "reason", "cannot write carts", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot write carts")
	}
	if cart == nil {
		l.Warn("add_product_error", "status", 404, "reason", "cart not found", "cart_id", cartID)
		return echo.NewHTTPError(http.StatusNotFound, "cart not found")
	}

	l.Info("add_product_success", "cart_id", cartID, "product_id", productID)
	return c.JSON(http.StatusOK, cart)
}
