package service

import (
	"context"
	"testing"

	"github.com/Skotchmaster/inventory_cart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddProductTwiceIncrements(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	c, err := s.carts.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CartLine{}, c.Products)

	_, err = s.carts.AddProduct(ctx, string(c.ID), "5")
	require.NoError(t, err)
	got, err := s.carts.AddProduct(ctx, string(c.ID), "5")
	require.NoError(t, err)

	assert.Equal(t, []models.CartLine{{Product: "5", Quantity: 2}}, got.Products)
}

func TestCart_UnknownCart(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	got, err := s.carts.AddProduct(ctx, "404", "1")
	require.NoError(t, err)
	assert.Nil(t, got)

	missing, err := s.carts.GetByID(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCart_IDsAreIndependentOfProducts(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.catalog.Create(ctx, payloadWithCode("A"))
	require.NoError(t, err)
	_, err = s.catalog.Create(ctx, payloadWithCode("B"))
	require.NoError(t, err)

	c, err := s.carts.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ID("1"), c.ID)

	all, err := s.carts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
