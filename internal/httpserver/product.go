package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Skotchmaster/inventory_cart/internal/models"
	"github.com/Skotchmaster/inventory_cart/internal/service"
	"github.com/Skotchmaster/inventory_cart/internal/transport"
	"github.com/Skotchmaster/inventory_cart/internal/util"
	"github.com/Skotchmaster/inventory_cart/pkg/logging"
	"github.com/labstack/echo/v4"
)

// ProductPublisher receives the full product list after each mutation.
type ProductPublisher interface {
	PublishProducts(ctx context.Context, products []models.Product) error
}

type CatalogHTTP struct {
	Svc    *service.CatalogService
	Events ProductPublisher
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot read products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read products")
	}

	if c.QueryParam("page") == "" && c.QueryParam("size") == "" {
		l.Info("get_products_success", "count", len(products))
		return c.JSON(http.StatusOK, products)
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	c.Response().Header().Set("X-Total-Count", strconv.Itoa(len(products)))
	l.Info("get_products_success", "count", len(products), "page", page, "size", limit)
	return c.JSON(http.StatusOK, util.Page(products, offset, limit))
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id := c.Param("pid")
	product, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		l.Error("get_product_error", "status", 500, "reason", "cannot read products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read products")
	}
	if product == nil {
		l.Warn("get_product_error", "status", 404, "reason", "product not found", "product_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.ProductPayload
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Create(ctx, req)
	if err != nil {
		return productError(l, "create_product_error", err)
	}

	h.broadcast(ctx)
	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id := c.Param("pid")
	var req transport.ProductPayload
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return productError(l, "update_product_error", err)
	}
	if product == nil {
		l.Warn("update_product_error", "status", 404, "reason", "product not found", "product_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	h.broadcast(ctx)
	l.Info("update_product_success", "product_id", id)
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) SetProductStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.set_status")

	id := c.Param("pid")
	var req transport.StatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	var status bool
	if !req.Status.Set || req.Status.IsNull() || json.Unmarshal(req.Status.Raw, &status) != nil {
		l.Warn("set_status_error", "status", 400, "reason", "status must be a boolean")
		return echo.NewHTTPError(http.StatusBadRequest, "status: must be a boolean")
	}

	product, err := h.Svc.SetStatus(ctx, id, status)
	if err != nil {
		return productError(l, "set_status_error", err)
	}
	if product == nil {
		l.Warn("set_status_error", "status", 404, "reason", "product not found", "product_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	h.broadcast(ctx)
	l.Info("set_status_success", "product_id", id, "product_status", status)
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id := c.Param("pid")
	deleted, err := h.Svc.Delete(ctx, id)
	if err != nil {
		l.Error("delete_product_error", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}
	if !deleted {
		l.Warn("delete_product_error", "status", 404, "reason", "product not found", "product_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	h.broadcast(ctx)
	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

// broadcast publishes the current product list. Failures are only logged.
func (h *CatalogHTTP) broadcast(ctx context.Context) {
	if h.Events == nil {
		return
	}
	l := logging.FromContext(ctx)

	products, err := h.Svc.List(ctx)
	if err != nil {
		l.Warn("broadcast_products_error", "reason", "cannot read products", "error", err)
		return
	}
	if err := h.Events.PublishProducts(ctx, products); err != nil {
		l.Warn("broadcast_products_error", "reason", "publish failed", "error", err)
	}
}

func productError(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "invalid product", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", "duplicate code", "error", err)
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		l.Error(event, "status", 500, "reason", "cannot write products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot write products")
	}
}
