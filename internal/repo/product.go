package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/inventory_cart/internal/jsonstore"
	"github.com/Skotchmaster/inventory_cart/internal/models"
)

type ProductRepo struct {
	Store *jsonstore.Collection[models.Product]
}

func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	return r.Store.Load(ctx)
}

func (r *ProductRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	products, err := r.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfProduct(products, id); i >= 0 {
		return &products[i], nil
	}
	return nil, nil
}

// CreateProduct assigns the next id and appends prod unless its code is
// already taken.
func (r *ProductRepo) CreateProduct(ctx context.Context, prod models.Product) (*models.Product, error) {
	var created models.Product
	err := r.Store.Update(ctx, func(products []models.Product) ([]models.Product, error) {
		if codeTaken(products, prod.Code, "") {
			return nil, fmt.Errorf("code %q: %w", prod.Code, ErrDuplicateCode)
		}
		prod.ID = models.ID(r.Store.NextID(products))
		created = prod
		return append(products, prod), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// PatchProduct returns nil, nil when id is unknown.
func (r *ProductRepo) PatchProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	var updated models.Product
	err := r.Store.Update(ctx, func(products []models.Product) ([]models.Product, error) {
		i := indexOfProduct(products, id)
		if i < 0 {
			return nil, errNoChange
		}
		if patch.Code != nil && codeTaken(products, *patch.Code, id) {
			return nil, fmt.Errorf("code %q: %w", *patch.Code, ErrDuplicateCode)
		}
		prodID := products[i].ID
		patch.Apply(&products[i])
		products[i].ID = prodID
		updated = products[i]
		return products, nil
	})
	if errors.Is(err, errNoChange) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProductRepo) DeleteProduct(ctx context.Context, id string) (bool, error) {
	err := r.Store.Update(ctx, func(products []models.Product) ([]models.Product, error) {
		i := indexOfProduct(products, id)
		if i < 0 {
			return nil, errNoChange
		}
		return append(products[:i], products[i+1:]...), nil
	})
	if errors.Is(err, errNoChange) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func indexOfProduct(products []models.Product, id string) int {
	for i := range products {
		if string(products[i].ID) == id {
			return i
		}
	}
	return -1
}

func codeTaken(products []models.Product, code, exceptID string) bool {
	for _, p := range products {
		if strings.TrimSpace(p.Code) == code && string(p.ID) != exceptID {
			return true
		}
	}
	return false
}
