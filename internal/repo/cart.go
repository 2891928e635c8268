package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/inventory_cart/internal/jsonstore"
	"github.com/Skotchmaster/inventory_cart/internal/models"
)

type CartRepo struct {
	Store *jsonstore.Collection[models.Cart]
}

func (r *CartRepo) List(ctx context.Context) ([]models.Cart, error) {
	return r.Store.Load(ctx)
}

func (r *CartRepo) CreateCart(ctx context.Context) (*models.Cart, error) {
	var created models.Cart
	err := r.Store.Update(ctx, func(carts []models.Cart) ([]models.Cart, error) {
		created = models.Cart{
			ID:       models.ID(r.Store.NextID(carts)),
			Products: []models.CartLine{},
		}
		return append(carts, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *CartRepo) GetCart(ctx context.Context, id string) (*models.Cart, error) {
	carts, err := r.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfCart(carts, id); i >= 0 {
		return &carts[i], nil
	}
	return nil, nil
}

// AddToCart bumps the quantity of the line for productID, or appends a
// line with quantity 1. Returns nil, nil when the cart does not exist.
func (r *CartRepo) AddToCart(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	var updated models.Cart
	err := r.Store.Update(ctx, func(carts []models.Cart) ([]models.Cart, error) {
		i := indexOfCart(carts, cartID)
		if i < 0 {
			return nil, errNoChange
		}
		cart := &carts[i]

		added := false
		for j := range cart.Products {
			if string(cart.Products[j].Product) == productID {
				cart.Products[j].Quantity++
				added = true
				break
			}
		}
		if !added {
			cart.Products = append(cart.Products, models.CartLine{Product: models.ID(productID), Quantity: 1})
		}

		updated = *cart
		return carts, nil
	})
	if errors.Is(err, errNoChange) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveProductFromCarts drops every line referencing productID from every
// cart and returns how many lines went away. The file is only rewritten
// when something changed.
func (r *CartRepo) RemoveProductFromCarts(ctx context.Context, productID string) (int, error) {
	removed := 0
	err := r.Store.Update(ctx, func(carts []models.Cart) ([]models.Cart, error) {
		for i := range carts {
			kept := carts[i].Products[:0]
			for _, line := range carts[i].Products {
				if string(line.Product) == productID {
					removed++
					continue
				}
				kept = append(kept, line)
			}
			carts[i].Products = kept
		}
		if removed == 0 {
			return nil, errNoChange
		}
		return carts, nil
	})
	if errors.Is(err, errNoChange) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func indexOfCart(carts []models.Cart, id string) int {
	for i := range carts {
		if string(carts[i].ID) == id {
			return i
		}
	}
	return -1
}
