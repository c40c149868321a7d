package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /bakery/orders: fulfilment side of the order state machine.
type BakeryOrderHandler struct {
	uc *usecase.BakeryOrderUsecase
}

func NewBakeryOrderHandler(uc *usecase.BakeryOrderUsecase) *BakeryOrderHandler {
	return &BakeryOrderHandler{uc: uc}
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *BakeryOrderHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/bakery/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(auth.RoleBakery))

	g.GET("", h.listOrders)
	g.POST("/:id/status", h.updateStatus)
}

func (h *BakeryOrderHandler) listOrders(c echo.Context) error {
	bakeryID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	orders, total, err := h.uc.ListOrders(c.Request().Context(), bakeryID, page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return okJSON(c, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
	})
}

func (h *BakeryOrderHandler) updateStatus(c echo.Context) error {
	bakeryID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid order id")
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), bakeryID, orderID, model.OrderStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, out)
}
