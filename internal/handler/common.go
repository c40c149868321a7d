package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Every response carries success so clients can branch without
// inspecting the HTTP status first.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func okJSON(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, SuccessResponse{Success: true, Data: data})
}

func okMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: msg})
}

func errJSON(c echo.Context, status int, code string, msg string) error {
	return c.JSON(status, ErrorResponse{Success: false, Error: code, Message: msg})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ue, ok := usecase.AsError(err); ok {
		return errJSON(c, ue.Status, string(ue.Code), ue.Message)
	}

	return errJSON(c, http.StatusInternalServerError, string(usecase.CodeStoreError), "internal error")
}

// middleware.AuthJWT puts the subject id into the context as int64.
func getSubjectIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxSubjectIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

func unauthorized(c echo.Context) error {
	return errJSON(c, http.StatusUnauthorized, string(usecase.CodeNotLoggedIn), "not logged in")
}
