package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Product       *handler.ProductHandler
	Cart          *handler.CartHandler
	Order         *handler.OrderHandler
	Favorite      *handler.FavoriteHandler
	BakeryAuth    *handler.BakeryAuthHandler
	BakeryProduct *handler.BakeryProductHandler
	BakeryOrder   *handler.BakeryOrderHandler
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	corsConfig := echomw.DefaultCORSConfig
	if cfg.FEURL != "" {
		corsConfig.AllowOrigins = []string{cfg.FEURL}
		corsConfig.AllowCredentials = true
	}
	e.Use(echomw.CORSWithConfig(corsConfig))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	registerRoutes(e, cfg, h)
	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
