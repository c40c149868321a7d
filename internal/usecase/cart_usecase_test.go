package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddToCartMergesQuantities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "lena")
	bakery := env.seedBakery(t, "bigas")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "putok", 1500, 10)

	uc := NewCartUsecase(env.cart, env.products)

	_, err := uc.AddToCart(ctx, user.ID, AddCartInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	out, err := uc.AddToCart(ctx, user.ID, AddCartInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	require.Equal(t, int64(4), out.Items[0].Quantity)
	require.Equal(t, int64(6000), out.Total)
}

func TestAddToCartChecksCombinedStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "mia")
	bakery := env.seedBakery(t, "apog")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "kalihim", 2000, 3)

	uc := NewCartUsecase(env.cart, env.products)

	_, err := uc.AddToCart(ctx, user.ID, AddCartInput{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	// 2 already in cart + 2 requested > 3 in stock
	_, err = uc.AddToCart(ctx, user.ID, AddCartInput{ProductID: p.ID, Quantity: 2})
	requireCode(t, err, CodeInsufficientStock)
}

func TestAddToCartRejectsMissingAndUnavailable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "nina")
	bakery := env.seedBakery(t, "asin")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "pan de coco", 2500, 5)

	uc := NewCartUsecase(env.cart, env.products)

	_, err := uc.AddToCart(ctx, user.ID, AddCartInput{ProductID: 9999, Quantity: 1})
	requireCode(t, err, CodeNotFound)

	require.NoError(t, env.db.Model(&p).Update("is_available", false).Error)
	_, err = uc.AddToCart(ctx, user.ID, AddCartInput{ProductID: p.ID, Quantity: 1})
	requireCode(t, err, CodeUnavailable)

	_, err = uc.AddToCart(ctx, user.ID, AddCartInput{ProductID: p.ID, Quantity: 0})
	requireCode(t, err, CodeValidation)
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "oli")
	bakery := env.seedBakery(t, "gatas")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "mamon", 3000, 5)

	uc := NewCartUsecase(env.cart, env.products)

	_, err := uc.AddToCart(ctx, user.ID, AddCartInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	out, err := uc.UpdateQuantity(ctx, user.ID, p.ID, 5)
	require.NoError(t, err)
	require.Equal(t, int64(5), out.Items[0].Quantity)

	_, err = uc.UpdateQuantity(ctx, user.ID, p.ID, 6)
	requireCode(t, err, CodeInsufficientStock)

	_, err = uc.UpdateQuantity(ctx, user.ID, p.ID, 0)
	requireCode(t, err, CodeValidation)

	// no line for this product
	other := env.seedProduct(t, bakery.ID, cat.ID, "taisan", 4000, 5)
	_, err = uc.UpdateQuantity(ctx, user.ID, other.ID, 1)
	requireCode(t, err, CodeNotFound)
}

func TestRemoveAndClear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "pia")
	bakery := env.seedBakery(t, "tsokolate")
	cat := env.seedCategory(t, "bread")
	a := env.seedProduct(t, bakery.ID, cat.ID, "pianono", 3500, 5)
	b := env.seedProduct(t, bakery.ID, cat.ID, "hopia", 1800, 5)

	uc := NewCartUsecase(env.cart, env.products)

	_, err := uc.AddToCart(ctx, user.ID, AddCartInput{ProductID: a.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = uc.AddToCart(ctx, user.ID, AddCartInput{ProductID: b.ID, Quantity: 1})
	require.NoError(t, err)

	out, err := uc.Remove(ctx, user.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)

	_, err = uc.Remove(ctx, user.ID, a.ID)
	requireCode(t, err, CodeNotFound)

	require.NoError(t, uc.Clear(ctx, user.ID))
	got, err := uc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, got.Items)
	require.Zero(t, got.Total)
}
