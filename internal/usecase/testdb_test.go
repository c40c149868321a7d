package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/infra/event"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	tx         *infraRepo.TxManagerGorm
	users      *infraRepo.UserGormRepository
	bakeries   *infraRepo.BakeryGormRepository
	categories *infraRepo.CategoryGormRepository
	products   *infraRepo.ProductGormRepository
	cart       *infraRepo.CartGormRepository
	favorites  *infraRepo.FavoriteGormRepository
	orders     *infraRepo.OrderGormRepository
	orderItems *infraRepo.OrderItemGormRepository
	inventory  *infraRepo.InventoryGormRepository
	stats      *infraRepo.StatsGormRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Bakery{},
		&model.Category{},
		&model.Product{},
		&model.CartLine{},
		&model.Favorite{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	))

	return &testEnv{
		db:         db,
		tx:         infraRepo.NewTxManagerGorm(db),
		users:      infraRepo.NewUserGormRepository(db),
		bakeries:   infraRepo.NewBakeryGormRepository(db),
		categories: infraRepo.NewCategoryGormRepository(db),
		products:   infraRepo.NewProductGormRepository(db),
		cart:       infraRepo.NewCartGormRepository(db),
		favorites:  infraRepo.NewFavoriteGormRepository(db),
		orders:     infraRepo.NewOrderGormRepository(db),
		orderItems: infraRepo.NewOrderItemGormRepository(db),
		inventory:  infraRepo.NewInventoryGormRepository(db),
		stats:      infraRepo.NewStatsGormRepository(db),
	}
}

func (env *testEnv) seedUser(t *testing.T, name string) model.User {
	t.Helper()
	u := model.User{Name: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&u).Error)
	return u
}

func (env *testEnv) seedBakery(t *testing.T, name string) model.Bakery {
	t.Helper()
	b := model.Bakery{Name: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&b).Error)
	return b
}

func (env *testEnv) seedCategory(t *testing.T, name string) model.Category {
	t.Helper()
	c := model.Category{Name: name}
	require.NoError(t, env.db.Create(&c).Error)
	return c
}

func (env *testEnv) seedProduct(t *testing.T, bakeryID, categoryID int64, name string, price int64, stock int64) model.Product {
	t.Helper()
	p := model.Product{
		BakeryID:        bakeryID,
		CategoryID:      categoryID,
		Name:            name,
		OriginalPrice:   price,
		DiscountedPrice: price,
		StockQuantity:   stock,
		IsAvailable:     true,
	}
	require.NoError(t, env.db.Create(&p).Error)
	return p
}

func (env *testEnv) addCartLine(t *testing.T, userID, productID, qty int64) {
	t.Helper()
	require.NoError(t, env.cart.Upsert(context.Background(), userID, productID, qty))
}

func (env *testEnv) productStock(t *testing.T, productID int64) int64 {
	t.Helper()
	var p model.Product
	require.NoError(t, env.db.First(&p, productID).Error)
	return p.StockQuantity
}

func productListQueryAll() repo.ProductListQuery {
	return repo.ProductListQuery{Page: 1, Limit: 20}
}

// capturePublisher records events instead of writing to a broker.
type capturePublisher struct {
	events []event.OrderEvent
}

func (p *capturePublisher) PublishOrderEvent(_ context.Context, ev event.OrderEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func requireCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	require.Error(t, err)
	ue, ok := AsError(err)
	require.True(t, ok, "expected taxonomy error, got %v", err)
	require.Equal(t, code, ue.Code)
}
