package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/inventory_cart/internal/events"
	"github.com/Skotchmaster/inventory_cart/internal/models"
	"github.com/Skotchmaster/inventory_cart/internal/repo"
	"github.com/Skotchmaster/inventory_cart/internal/transport"
	"github.com/Skotchmaster/inventory_cart/pkg/logging"
)

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, prod models.Product) (*models.Product, error)
	PatchProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
}

// CartCleaner removes every cart line that references a product.
type CartCleaner interface {
	RemoveProductFromCarts(ctx context.Context, productID string) (int, error)
}

type FaultReporter interface {
	PublishFault(ctx context.Context, f events.Fault) error
}

type CatalogService struct {
	Repo   ProductRepository
	Carts  CartCleaner
	Faults FaultReporter
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.List(ctx)
}

// GetByID returns nil, nil for an unknown id.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, req transport.ProductPayload) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog")

	patch, err := validateProduct(req, modeCreate)
	if err != nil {
		l.Info("create_product_invalid", "reason", err.Error())
		return nil, err
	}

	prod := models.Product{Status: true, Thumbnails: []string{}}
	patch.Apply(&prod)

	created, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateCode) {
			return nil, fmt.Errorf("%w: code %q already exists", ErrConflict, prod.Code)
		}
		l.Error("create_product_failed", "error", err)
		return nil, err
	}

	l.Info("product_created", "product_id", created.ID, "code", created.Code)
	return created, nil
}

// Update validates only the fields present in req. It returns nil, nil
// when id is unknown.
func (s *CatalogService) Update(ctx context.Context, id string, req transport.ProductPayload) (*models.Product, error) {
	patch, err := validateProduct(req, modePatch)
	if err != nil {
		return nil, err
	}
	return s.applyPatch(ctx, id, patch)
}

func (s *CatalogService) SetStatus(ctx context.Context, id string, status bool) (*models.Product, error) {
	return s.applyPatch(ctx, id, models.ProductPatch{Status: &status})
}

func (s *CatalogService) applyPatch(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog", "product_id", id)

	updated, err := s.Repo.PatchProduct(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateCode) {
			return nil, fmt.Errorf("%w: code %q already exists", ErrConflict, *patch.Code)
		}
		l.Error("update_product_failed", "error", err)
		return nil, err
	}
	if updated != nil {
		l.Info("product_updated")
	}
	return updated, nil
}

// Delete removes the product and then strips it from every cart.
//
// The two steps take two different file locks, one after the other. A cart
// read that lands between them can still see a line for the deleted
// product. A failed cascade is logged and reported as a fault; the product
// stays deleted and Delete still reports true.
func (s *CatalogService) Delete(ctx context.Context, id string) (bool, error) {
	l := logging.FromContext(ctx).With("svc", "catalog", "product_id", id)

	deleted, err := s.Repo.DeleteProduct(ctx, id)
	if err != nil {
		l.Error("delete_product_failed", "error", err)
		return false, err
	}
	if !deleted {
		return false, nil
	}

	removed, err := s.Carts.RemoveProductFromCarts(ctx, id)
	if err != nil {
		l.Error("cart_cascade_failed", "error", err)
		s.reportFault(ctx, events.Fault{Kind: events.KindCascadeFailed, ProductID: id, Error: err.Error()})
		return true, nil
	}

	l.Info("product_deleted", "cart_lines_removed", removed)
	return true, nil
}

func (s *CatalogService) reportFault(ctx context.Context, f events.Fault) {
	if s.Faults == nil {
		return
	}
	if err := s.Faults.PublishFault(ctx, f); err != nil {
		logging.FromContext(ctx).Warn("fault_publish_failed", "kind", f.Kind, "error", err)
	}
}
