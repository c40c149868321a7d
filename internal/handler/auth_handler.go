package handler

import (
	"errors"
	"net/http"

	auth "app/internal/usecase/auth_usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
)

// /auth: shopper registration and login.
type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase
	loginUC    *auth.LoginUsecase
}

func NewAuthHandler(registerUC *auth.RegisterUserUsecase, loginUC *auth.LoginUsecase) *AuthHandler {
	return &AuthHandler{registerUC: registerUC, loginUC: loginUC}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return okJSON(c, http.StatusCreated, out.User)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid body")
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return okJSON(c, http.StatusOK, out)
}

// Auth usecases return sentinel errors, not the taxonomy type.
func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrNameRequired),
		errors.Is(err, validator.ErrInvalidEmailFormat),
		errors.Is(err, validator.ErrPasswordTooShort),
		errors.Is(err, validator.ErrWeakPassword):
		return errJSON(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return errJSON(c, http.StatusConflict, "CONFLICT", "email already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return errJSON(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	default:
		return errJSON(c, http.StatusInternalServerError, "STORE_ERROR", "internal error")
	}
}
