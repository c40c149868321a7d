package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, subjectID int64, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runGuarded(t *testing.T, cfg config.Config, authz string, guards ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(guards) - 1; i >= 0; i-- {
		h = guards[i](h)
	}
	require.NoError(t, h(c))
	return rec, c
}

func TestAuthJWT(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	t.Run("valid token sets subject and role", func(t *testing.T) {
		tok := signToken(t, "test-secret", 42, "user", time.Minute)
		rec, c := runGuarded(t, cfg, "Bearer "+tok, AuthJWT(cfg))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, int64(42), c.Get(CtxSubjectIDKey))
		require.Equal(t, "user", c.Get(CtxRoleKey))
	})

	t.Run("missing header", func(t *testing.T) {
		rec, _ := runGuarded(t, cfg, "", AuthJWT(cfg))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := signToken(t, "other-secret", 42, "user", time.Minute)
		rec, _ := runGuarded(t, cfg, "Bearer "+tok, AuthJWT(cfg))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		tok := signToken(t, "test-secret", 42, "user", -time.Minute)
		rec, _ := runGuarded(t, cfg, "Bearer "+tok, AuthJWT(cfg))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("not bearer", func(t *testing.T) {
		rec, _ := runGuarded(t, cfg, "Basic abc", AuthJWT(cfg))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRoleGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	t.Run("matching role passes", func(t *testing.T) {
		tok := signToken(t, "test-secret", 7, "bakery", time.Minute)
		rec, _ := runGuarded(t, cfg, "Bearer "+tok, AuthJWT(cfg), RoleGuard("bakery"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		tok := signToken(t, "test-secret", 7, "user", time.Minute)
		rec, _ := runGuarded(t, cfg, "Bearer "+tok, AuthJWT(cfg), RoleGuard("bakery"))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no auth at all", func(t *testing.T) {
		rec, _ := runGuarded(t, cfg, "", RoleGuard("bakery"))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
