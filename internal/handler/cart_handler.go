package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type addCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/cart")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(auth.RoleUser))

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.PATCH("/:product_id", h.updateQuantity)
	g.DELETE("/:product_id", h.removeLine)
	g.DELETE("", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req addCartRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	out, err := h.uc.AddToCart(c.Request().Context(), userID, usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, out)
}

func (h *CartHandler) updateQuantity(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product id")
	}

	var req updateCartRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	out, err := h.uc.UpdateQuantity(c.Request().Context(), userID, productID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, out)
}

func (h *CartHandler) removeLine(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product id")
	}

	out, err := h.uc.Remove(c.Request().Context(), userID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.uc.Clear(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "cart cleared")
}
