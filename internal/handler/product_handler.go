package handler

import (
	"net/http"
	"strconv"

	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Public catalog: no auth required.
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/products", h.list)
	api.GET("/products/:id", h.detail)
	api.GET("/categories", h.categories)
	api.GET("/search", h.search)
}

func (h *ProductHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid page")
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid limit")
		}
		limit = l
	}

	q := repo.ProductListQuery{
		Page:  page,
		Limit: limit,
		Q:     c.QueryParam("q"),
		Sort:  c.QueryParam("sort"),
	}

	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid category_id")
		}
		q.CategoryID = &id
	}
	if v := c.QueryParam("bakery_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bakery_id")
		}
		q.BakeryID = &id
	}

	out, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
	}

	out, err := h.uc.GetDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, out)
}

// /search is the dedicated full-text endpoint; q is required here,
// unlike /products where it is one filter among several.
func (h *ProductHandler) search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "q is required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.uc.List(c.Request().Context(), repo.ProductListQuery{
		Page:  page,
		Limit: limit,
		Q:     q,
	})
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, out)
}

func (h *ProductHandler) categories(c echo.Context) error {
	cats, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, cats)
}
