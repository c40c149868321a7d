package handler

import (
	"errors"
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /bakery/auth: seller portal registration and login.
type BakeryAuthHandler struct {
	uc *auth.BakeryAuthUsecase
}

func NewBakeryAuthHandler(uc *auth.BakeryAuthUsecase) *BakeryAuthHandler {
	return &BakeryAuthHandler{uc: uc}
}

type registerBakeryRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

type updateBakeryProfileRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

func (h *BakeryAuthHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/bakery/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)

	p := api.Group("/bakery/profile")
	p.Use(middleware.AuthJWT(cfg))
	p.Use(middleware.RoleGuard(auth.RoleBakery))
	p.GET("", h.getProfile)
	p.PATCH("", h.updateProfile)
}

func (h *BakeryAuthHandler) register(c echo.Context) error {
	var req registerBakeryRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	bakery, err := h.uc.Register(c.Request().Context(), auth.RegisterBakeryInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Address:     req.Address,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if err != nil {
		return writeAuthError(c, err)
	}
	return okJSON(c, http.StatusCreated, bakery)
}

func (h *BakeryAuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	out, err := h.uc.Login(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, err)
	}
	return okJSON(c, http.StatusOK, out)
}

func (h *BakeryAuthHandler) getProfile(c echo.Context) error {
	bakeryID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	bakery, err := h.uc.GetProfile(c.Request().Context(), bakeryID)
	if errors.Is(err, repository.ErrNotFound) {
		return errJSON(c, http.StatusNotFound, "NOT_FOUND", "bakery not found")
	}
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, bakery)
}

func (h *BakeryAuthHandler) updateProfile(c echo.Context) error {
	bakeryID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req updateBakeryProfileRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	bakery, err := h.uc.UpdateProfile(c.Request().Context(), bakeryID, auth.UpdateBakeryProfileInput{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if errors.Is(err, auth.ErrNameRequired) {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	}
	if errors.Is(err, repository.ErrNotFound) {
		return errJSON(c, http.StatusNotFound, "NOT_FOUND", "bakery not found")
	}
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, bakery)
}
