package usecase

import (
	"context"
	"strings"
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/require"
)

var testFees = FeeSchedule{Delivery: 2000, Pickup: 0}

func TestPlaceOrderTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "ana")
	bakery := env.seedBakery(t, "panaderia")
	cat := env.seedCategory(t, "bread")

	// 2 x 50.00 + 1 x 90.00 + 20.00 delivery = 210.00
	pandesal := env.seedProduct(t, bakery.ID, cat.ID, "pandesal", 5000, 10)
	ensaymada := env.seedProduct(t, bakery.ID, cat.ID, "ensaymada", 9000, 5)

	env.addCartLine(t, user.ID, pandesal.ID, 2)
	env.addCartLine(t, user.ID, ensaymada.ID, 1)

	pub := &capturePublisher{}
	uc := NewOrderUsecase(env.tx, testFees, pub)

	out, err := uc.PlaceOrder(ctx, user.ID, PlaceOrderInput{
		DeliveryOption: "delivery",
		PaymentMethod:  "cod",
	})
	require.NoError(t, err)
	require.Equal(t, int64(21000), out.TotalAmount)
	require.Equal(t, model.OrderStatusPending, out.Status)
	require.True(t, strings.HasPrefix(out.OrderNumber, "BB-"))

	// stock decremented
	require.Equal(t, int64(8), env.productStock(t, pandesal.ID))
	require.Equal(t, int64(4), env.productStock(t, ensaymada.ID))

	// cart cleared
	lines, err := env.cart.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, lines)

	// snapshot rows carry name, bakery and unit price
	items, err := env.orderItems.ListByOrderID(ctx, out.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		require.Equal(t, "panaderia", it.BakeryName)
		require.Equal(t, it.UnitPrice*it.Quantity, it.Subtotal)
	}

	// event published after commit
	require.Len(t, pub.events, 1)
	require.Equal(t, "order.created", pub.events[0].Type)
	require.Equal(t, out.OrderNumber, pub.events[0].OrderNumber)
}

func TestPlaceOrderPickupHasNoFee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "ben")
	bakery := env.seedBakery(t, "hornos")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "baguette", 6000, 3)
	env.addCartLine(t, user.ID, p.ID, 1)

	uc := NewOrderUsecase(env.tx, testFees, nil)

	out, err := uc.PlaceOrder(ctx, user.ID, PlaceOrderInput{
		DeliveryOption: "pickup",
		PaymentMethod:  "gcash",
	})
	require.NoError(t, err)
	require.Equal(t, int64(6000), out.TotalAmount)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "carla")

	uc := NewOrderUsecase(env.tx, testFees, nil)

	_, err := uc.PlaceOrder(context.Background(), user.ID, PlaceOrderInput{
		DeliveryOption: "delivery",
		PaymentMethod:  "cod",
	})
	requireCode(t, err, CodeEmptyCart)
}

func TestPlaceOrderInvalidEnums(t *testing.T) {
	env := newTestEnv(t)
	uc := NewOrderUsecase(env.tx, testFees, nil)

	_, err := uc.PlaceOrder(context.Background(), 1, PlaceOrderInput{
		DeliveryOption: "teleport",
		PaymentMethod:  "cod",
	})
	requireCode(t, err, CodeValidation)

	_, err = uc.PlaceOrder(context.Background(), 1, PlaceOrderInput{
		DeliveryOption: "pickup",
		PaymentMethod:  "barter",
	})
	requireCode(t, err, CodeValidation)
}

// One short line fails the whole checkout: nothing is decremented,
// no order row appears and the cart stays intact.
func TestPlaceOrderNoPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "dado")
	bakery := env.seedBakery(t, "tinapay")
	cat := env.seedCategory(t, "bread")

	a := env.seedProduct(t, bakery.ID, cat.ID, "wheat loaf", 5000, 5)
	b := env.seedProduct(t, bakery.ID, cat.ID, "rye loaf", 7000, 2)

	env.addCartLine(t, user.ID, a.ID, 5)
	env.addCartLine(t, user.ID, b.ID, 3) // only 2 in stock

	pub := &capturePublisher{}
	uc := NewOrderUsecase(env.tx, testFees, pub)

	_, err := uc.PlaceOrder(ctx, user.ID, PlaceOrderInput{
		DeliveryOption: "delivery",
		PaymentMethod:  "cod",
	})
	requireCode(t, err, CodeInsufficientStock)

	require.Equal(t, int64(5), env.productStock(t, a.ID))
	require.Equal(t, int64(2), env.productStock(t, b.ID))

	var orderCount int64
	require.NoError(t, env.db.Model(&model.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)

	lines, err := env.cart.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.Empty(t, pub.events)
}

func TestPlaceOrderSkipsUnavailableProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "elsa")
	bakery := env.seedBakery(t, "masa")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "brioche", 8000, 4)

	env.addCartLine(t, user.ID, p.ID, 1)
	require.NoError(t, env.db.Model(&model.Product{}).Where("id = ?", p.ID).
		Update("is_available", false).Error)

	uc := NewOrderUsecase(env.tx, testFees, nil)
	_, err := uc.PlaceOrder(ctx, user.ID, PlaceOrderInput{
		DeliveryOption: "delivery",
		PaymentMethod:  "cod",
	})
	requireCode(t, err, CodeInsufficientStock)
}

// Repricing after checkout must not touch the committed snapshot.
func TestOrderSnapshotSurvivesRepricing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "fe")
	bakery := env.seedBakery(t, "horno")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "croissant", 4000, 10)
	env.addCartLine(t, user.ID, p.ID, 2)

	uc := NewOrderUsecase(env.tx, testFees, nil)
	out, err := uc.PlaceOrder(ctx, user.ID, PlaceOrderInput{
		DeliveryOption: "pickup",
		PaymentMethod:  "card",
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&model.Product{}).Where("id = ?", p.ID).
		Update("discounted_price", 9999).Error)

	detail, err := uc.GetMyOrderDetail(ctx, user.ID, out.OrderID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	require.Equal(t, int64(4000), detail.Items[0].UnitPrice)
	require.Equal(t, int64(8000), detail.Order.TotalAmount)
}

func TestGetMyOrderDetailHidesOthersOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, "gina")
	other := env.seedUser(t, "hugo")
	bakery := env.seedBakery(t, "levain")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "sourdough", 12000, 3)
	env.addCartLine(t, owner.ID, p.ID, 1)

	uc := NewOrderUsecase(env.tx, testFees, nil)
	out, err := uc.PlaceOrder(ctx, owner.ID, PlaceOrderInput{
		DeliveryOption: "pickup",
		PaymentMethod:  "cod",
	})
	require.NoError(t, err)

	_, err = uc.GetMyOrderDetail(ctx, other.ID, out.OrderID)
	requireCode(t, err, CodeNotFound)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "ines")
	bakery := env.seedBakery(t, "trigo")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "monay", 3000, 6)
	env.addCartLine(t, user.ID, p.ID, 4)

	pub := &capturePublisher{}
	uc := NewOrderUsecase(env.tx, testFees, pub)

	out, err := uc.PlaceOrder(ctx, user.ID, PlaceOrderInput{
		DeliveryOption: "pickup",
		PaymentMethod:  "cod",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), env.productStock(t, p.ID))

	require.NoError(t, uc.CancelOrder(ctx, user.ID, out.OrderID))
	require.Equal(t, int64(6), env.productStock(t, p.ID))

	o, err := env.orders.FindByID(ctx, out.OrderID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCancelled, o.Status)

	require.Len(t, pub.events, 2)
	require.Equal(t, "order.cancelled", pub.events[1].Type)
}

func TestCancelOrderTerminalStates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "jon")
	bakery := env.seedBakery(t, "harina")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "bicho", 2500, 8)
	env.addCartLine(t, user.ID, p.ID, 2)

	uc := NewOrderUsecase(env.tx, testFees, nil)
	out, err := uc.PlaceOrder(ctx, user.ID, PlaceOrderInput{
		DeliveryOption: "pickup",
		PaymentMethod:  "cod",
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&model.Order{}).Where("id = ?", out.OrderID).
		Update("order_status", model.OrderStatusCompleted).Error)

	err = uc.CancelOrder(ctx, user.ID, out.OrderID)
	requireCode(t, err, CodeInvalidState)

	// stock untouched by the rejected cancel
	require.Equal(t, int64(6), env.productStock(t, p.ID))

	// cancelling twice is also rejected
	require.NoError(t, env.db.Model(&model.Order{}).Where("id = ?", out.OrderID).
		Update("order_status", model.OrderStatusCancelled).Error)
	err = uc.CancelOrder(ctx, user.ID, out.OrderID)
	requireCode(t, err, CodeInvalidState)
}

func TestListMyOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "kiko")
	bakery := env.seedBakery(t, "pugon")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "spanish bread", 3500, 20)

	uc := NewOrderUsecase(env.tx, testFees, nil)

	for i := 0; i < 3; i++ {
		env.addCartLine(t, user.ID, p.ID, 2)
		_, err := uc.PlaceOrder(ctx, user.ID, PlaceOrderInput{
			DeliveryOption: "pickup",
			PaymentMethod:  "cod",
		})
		require.NoError(t, err)
	}

	orders, total, err := uc.ListMyOrders(ctx, user.ID, 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	require.Equal(t, int64(1), orders[0].TotalItems)
}
