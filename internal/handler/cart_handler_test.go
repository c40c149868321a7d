package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/domain/model"
	infraRepo "app/internal/infra/repository"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*CartHandler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Bakery{}, &model.Category{},
		&model.Product{}, &model.CartLine{},
	))

	uc := usecase.NewCartUsecase(
		infraRepo.NewCartGormRepository(db),
		infraRepo.NewProductGormRepository(db),
	)
	return NewCartHandler(uc), db
}

func newAuthedContext(t *testing.T, method, path, body string, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxSubjectIDKey, userID)
	return c, rec
}

func TestCartHandlerAddAndGet(t *testing.T) {
	h, db := setupCartTest(t)

	bakery := model.Bakery{Name: "tester", Email: "t@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&bakery).Error)
	cat := model.Category{Name: "bread"}
	require.NoError(t, db.Create(&cat).Error)
	p := model.Product{
		BakeryID: bakery.ID, CategoryID: cat.ID, Name: "pandesal",
		OriginalPrice: 2000, DiscountedPrice: 2000, StockQuantity: 5, IsAvailable: true,
	}
	require.NoError(t, db.Create(&p).Error)

	c, rec := newAuthedContext(t, http.MethodPost, "/cart", `{"product_id":1,"quantity":2}`, 1)
	require.NoError(t, h.addToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Items []struct {
				Quantity int64 `json:"quantity"`
				Subtotal int64 `json:"subtotal"`
			} `json:"items"`
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Data.Items, 1)
	require.Equal(t, int64(4000), resp.Data.Total)
}

func TestCartHandlerErrorEnvelope(t *testing.T) {
	h, db := setupCartTest(t)

	bakery := model.Bakery{Name: "tester", Email: "t@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&bakery).Error)
	cat := model.Category{Name: "bread"}
	require.NoError(t, db.Create(&cat).Error)
	p := model.Product{
		BakeryID: bakery.ID, CategoryID: cat.ID, Name: "ensaymada",
		OriginalPrice: 2000, DiscountedPrice: 2000, StockQuantity: 1, IsAvailable: true,
	}
	require.NoError(t, db.Create(&p).Error)

	c, rec := newAuthedContext(t, http.MethodPost, "/cart", `{"product_id":1,"quantity":3}`, 1)
	require.NoError(t, h.addToCart(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "INSUFFICIENT_STOCK", resp.Error)

	// missing auth context
	c, rec = newAuthedContext(t, http.MethodGet, "/cart", "", 1)
	c.Set(middleware.CtxSubjectIDKey, nil)
	require.NoError(t, h.getCart(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
