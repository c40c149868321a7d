package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/require"
)

func newBakeryProductUC(env *testEnv) *BakeryProductUsecase {
	return NewBakeryProductUsecase(env.tx, env.products, env.categories, env.stats, nil)
}

func TestCreateProductDerivesDiscount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bakery := env.seedBakery(t, "amasar")
	cat := env.seedCategory(t, "bread")

	uc := newBakeryProductUC(env)

	created, err := uc.Create(ctx, bakery.ID, ProductInput{
		CategoryID:      cat.ID,
		Name:            "day-old pandesal",
		OriginalPrice:   5000,
		DiscountedPrice: 3000,
		StockQuantity:   12,
		IsAvailable:     true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(40), created.DiscountPercentage)
	require.Equal(t, bakery.ID, created.BakeryID)

	// audit trail
	var logs []model.AuditLog
	require.NoError(t, env.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, model.AuditActionCreateProduct, logs[0].Action)
	require.Equal(t, bakery.ID, logs[0].ActorBakeryID)
	require.Empty(t, logs[0].BeforeJSON)
	require.NotEmpty(t, logs[0].AfterJSON)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bakery := env.seedBakery(t, "masarap")
	cat := env.seedCategory(t, "bread")

	uc := newBakeryProductUC(env)

	_, err := uc.Create(ctx, bakery.ID, ProductInput{
		CategoryID:      cat.ID,
		Name:            "overpriced",
		OriginalPrice:   3000,
		DiscountedPrice: 5000, // above original
	})
	requireCode(t, err, CodeValidation)

	_, err = uc.Create(ctx, bakery.ID, ProductInput{
		CategoryID:      cat.ID,
		Name:            "",
		OriginalPrice:   3000,
		DiscountedPrice: 2000,
	})
	requireCode(t, err, CodeValidation)

	_, err = uc.Create(ctx, bakery.ID, ProductInput{
		CategoryID:      9999,
		Name:            "orphan",
		OriginalPrice:   3000,
		DiscountedPrice: 2000,
	})
	requireCode(t, err, CodeValidation)
}

func TestUpdateProductOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedBakery(t, "may-ari")
	intruder := env.seedBakery(t, "iba")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, owner.ID, cat.ID, "cheese roll", 4500, 6)

	uc := newBakeryProductUC(env)

	in := ProductInput{
		CategoryID:      cat.ID,
		Name:            "cheese roll v2",
		OriginalPrice:   4500,
		DiscountedPrice: 4000,
		IsAvailable:     true,
	}

	// another bakery sees someone else's product as missing
	_, err := uc.Update(ctx, intruder.ID, p.ID, in)
	requireCode(t, err, CodeNotFound)

	updated, err := uc.Update(ctx, owner.ID, p.ID, in)
	require.NoError(t, err)
	require.Equal(t, "cheese roll v2", updated.Name)
	require.Equal(t, int64(11), updated.DiscountPercentage)
}

func TestUpdateStockRecordsAdjustment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bakery := env.seedBakery(t, "umaga")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "ube loaf", 8000, 10)

	uc := newBakeryProductUC(env)

	after, err := uc.UpdateStock(ctx, bakery.ID, p.ID, StockUpdateInput{
		NewStock: 4,
		Reason:   "end of day waste",
	})
	require.NoError(t, err)
	require.Equal(t, int64(4), after.StockQuantity)
	require.Equal(t, int64(4), env.productStock(t, p.ID))

	var adj []model.InventoryAdjustment
	require.NoError(t, env.db.Find(&adj).Error)
	require.Len(t, adj, 1)
	require.Equal(t, int64(-6), adj[0].Delta)
	require.Equal(t, "end of day waste", adj[0].Reason)

	_, err = uc.UpdateStock(ctx, bakery.ID, p.ID, StockUpdateInput{NewStock: -1, Reason: "x"})
	requireCode(t, err, CodeValidation)

	_, err = uc.UpdateStock(ctx, bakery.ID, p.ID, StockUpdateInput{NewStock: 5, Reason: "  "})
	requireCode(t, err, CodeValidation)
}

func TestDeleteProductHidesFromCatalog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bakery := env.seedBakery(t, "gabi")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "garlic bread", 3200, 7)

	uc := newBakeryProductUC(env)
	require.NoError(t, uc.Delete(ctx, bakery.ID, p.ID))

	// soft delete: row survives, public catalog does not show it
	items, total, err := env.products.ListPublic(ctx, productListQueryAll())
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, items)

	var count int64
	require.NoError(t, env.db.Unscoped().Model(&model.Product{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestBakeryDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "buyer")
	bakery := env.seedBakery(t, "tindahan")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "banana bread", 5000, 10)

	env.addCartLine(t, user.ID, p.ID, 3)
	orderUC := NewOrderUsecase(env.tx, testFees, nil)
	_, err := orderUC.PlaceOrder(ctx, user.ID, PlaceOrderInput{
		DeliveryOption: "pickup",
		PaymentMethod:  "cod",
	})
	require.NoError(t, err)

	uc := newBakeryProductUC(env)
	stats, err := uc.Dashboard(ctx, bakery.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.TotalProducts)
	require.Equal(t, int64(7), stats.TotalStock)
	require.Equal(t, int64(3), stats.UnitsSold)
	require.Equal(t, int64(15000), stats.Revenue)
	require.Equal(t, int64(1), stats.PendingOrders)
}
