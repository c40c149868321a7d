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

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type placeOrderRequest struct {
	DeliveryOption  string `json:"delivery_option"`
	PaymentMethod   string `json:"payment_method"`
	DeliveryAddress string `json:"delivery_address"`
	ContactNumber   string `json:"contact_number"`
	Notes           string `json:"notes"`
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(auth.RoleUser))

	g.POST("", h.placeOrder)
	g.GET("", h.listOrders)
	g.GET("/:id", h.orderDetail)
	g.POST("/:id/cancel", h.cancelOrder)
}

func (h *OrderHandler) placeOrder(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		DeliveryOption:  req.DeliveryOption,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		ContactNumber:   req.ContactNumber,
		Notes:           req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusCreated, out)
}

func (h *OrderHandler) listOrders(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	orders, total, err := h.uc.ListMyOrders(c.Request().Context(), userID, page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return okJSON(c, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
	})
}

func (h *OrderHandler) orderDetail(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order id")
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, out)
}

func (h *OrderHandler) cancelOrder(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order id")
	}

	if err := h.uc.CancelOrder(c.Request().Context(), userID, orderID); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "order cancelled")
}
