package service

import (
	"context"

	"github.com/Skotchmaster/inventory_cart/internal/models"
	"github.com/Skotchmaster/inventory_cart/pkg/logging"
)

type CartRepository interface {
	List(ctx context.Context) ([]models.Cart, error)
	CreateCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, id string) (*models.Cart, error)
	AddToCart(ctx context.Context, cartID, productID string) (*models.Cart, error)
}

type CartService struct {
	Repo CartRepository
}

func (s *CartService) List(ctx context.Context) ([]models.Cart, error) {
	return s.Repo.List(ctx)
}

func (s *CartService) Create(ctx context.Context) (*models.Cart, error) {
	cart, err := s.Repo.CreateCart(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("create_cart_failed", "svc", "cart", "error", err)
		return nil, err
	}
	logging.FromContext(ctx).Info("cart_created", "svc", "cart", "cart_id", cart.ID)
	return cart, nil
}

func (s *CartService) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	return s.Repo.GetCart(ctx, id)
}

// AddProduct trusts productID; callers check the product exists. It
// returns nil, nil when the cart is unknown.
func (s *CartService) AddProduct(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	cart, err := s.Repo.AddToCart(ctx, cartID, productID)
	if err != nil {
		logging.FromContext(ctx).Error("add_to_cart_failed", "svc", "cart", "cart_id", cartID, "product_id", productID, "error", err)
		return nil, err
	}
	return cart, nil
}
