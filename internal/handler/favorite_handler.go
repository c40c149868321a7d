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

type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

type addFavoriteRequest struct {
	ProductID int64 `json:"product_id"`
}

func (h *FavoriteHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/favorites")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(auth.RoleUser))

	g.GET("", h.list)
	g.POST("", h.add)
	g.DELETE("/:product_id", h.remove)
}

func (h *FavoriteHandler) list(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	views, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, views)
}

func (h *FavoriteHandler) add(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	if err := h.uc.Add(c.Request().Context(), userID, req.ProductID); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "added to favorites")
}

func (h *FavoriteHandler) remove(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product id")
	}

	if err := h.uc.Remove(c.Request().Context(), userID, productID); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "removed from favorites")
}
