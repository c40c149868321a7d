package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// /me: profile and password for the logged-in shopper.
type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *UserHandler) RegisterRoutes(api *echo.Group, cfg config.Config) {
	g := api.Group("/me")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(auth.RoleUser))

	g.GET("", h.getProfile)
	g.PATCH("", h.updateProfile)
	g.POST("/password", h.changePassword)
}

func (h *UserHandler) getProfile(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, user)
}

func (h *UserHandler) updateProfile(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}
	return okJSON(c, http.StatusOK, user)
}

func (h *UserHandler) changePassword(c echo.Context) error {
	userID, ok := getSubjectIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	if err := h.uc.ChangePassword(c.Request().Context(), userID, usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return writeError(c, err)
	}
	return okMessage(c, "password updated")
}
