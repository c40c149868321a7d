package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /bakery/products and /bakery/dashboard: catalog management for the
// logged-in bakery.
type BakeryProductHandler struct {
	uc *usecase.BakeryProductUsecase
}

func NewBakeryProductHandler(uc *usecase.BakeryProductUsecase) *BakeryProductHandler {
	return &BakeryProductHandler{uc: uc}
}

type productRequest struct {
	CategoryID      int64  `json:"category_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Emoji           string `json:"emoji"`
	ImageURL        string `json:"image_url"`
	OriginalPrice   int64  `json:"original_price"`
	DiscountedPrice int64  `json:"discounted_price"`
	StockQuantity   int64  `json:"stock_quantity"`
	IsAvailable     bool   `json:"is_available"`
	IsOnSale        bool   `json:"is_on_sale"`
	SaleStartDate   string `json:"sale_start_date"` // RFC3339, optional
	SaleEndDate     string `json:"sale_end_date"`
	ExpiryDate      string `json:"expiry_date"`
}

type stockUpdateRequest struct {
	NewStock int64  `json:"new_stock"`
	Reason   string `json:"reason"`
}

func (h *BakeryProductHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/bakery")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(auth.RoleBakery))

	g.GET("/dashboard", h.dashboard)
	g.GET("/products", h.listProducts)
	g.POST("/products", h.createProduct)
	g.PATCH("/products/:id", h.updateProduct)
	g.DELETE("/products/:id", h.deleteProduct)
	g.POST("/products/:id/stock", h.updateStock)
}

func (h *BakeryProductHandler) dashboard(c echo.Context) error {
	bakeryID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	stats, err := h.uc.Dashboard(c.Request().Context(), bakeryID)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, stats)
}

func (h *BakeryProductHandler) listProducts(c echo.Context) error {
	bakeryID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.uc.ListMine(c.Request().Context(), bakeryID)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, items)
}

func (h *BakeryProductHandler) createProduct(c echo.Context) error {
	bakeryID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	in, ok := bindProductInput(c)
	if !ok {
		return nil
	}

	created, err := h.uc.Create(c.Request().Context(), bakeryID, in)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusCreated, created)
}

func (h *BakeryProductHandler) updateProduct(c echo.Context) error {
	bakeryID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product id")
	}

	in, ok := bindProductInput(c)
	if !ok {
		return nil
	}

	updated, err := h.uc.Update(c.Request().Context(), bakeryID, productID, in)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, updated)
}

func (h *BakeryProductHandler) deleteProduct(c echo.Context) error {
	bakeryID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product id")
	}

	if err := h.uc.Delete(c.Request().Context(), bakeryID, productID); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "product deleted")
}

func (h *BakeryProductHandler) updateStock(c echo.Context) error {
	bakeryID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product id")
	}

	var req stockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	updated, err := h.uc.UpdateStock(c.Request().Context(), bakeryID, productID, usecase.StockUpdateInput{
		NewStock: req.NewStock,
		Reason:   req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, updated)
}

// bindProductInput writes the error response itself; false means the
// response has already been sent.
func bindProductInput(c echo.Context) (usecase.ProductInput, bool) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		_ = errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
		return usecase.ProductInput{}, false
	}

	in := usecase.ProductInput{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Emoji:           req.Emoji,
		ImageURL:        req.ImageURL,
		OriginalPrice:   req.OriginalPrice,
		DiscountedPrice: req.DiscountedPrice,
		StockQuantity:   req.StockQuantity,
		IsAvailable:     req.IsAvailable,
		IsOnSale:        req.IsOnSale,
	}

	for _, f := range []struct {
		raw string
		dst **time.Time
	}{
		{req.SaleStartDate, &in.SaleStartDate},
		{req.SaleEndDate, &in.SaleEndDate},
		{req.ExpiryDate, &in.ExpiryDate},
	} {
		if f.raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, f.raw)
		if err != nil {
			_ = errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid date format")
			return usecase.ProductInput{}, false
		}
		*f.dst = &t
	}

	return in, true
}
