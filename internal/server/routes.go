package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	api := e.Group("/api")

	// public
	h.Auth.RegisterRoutes(api)
	h.BakeryAuth.RegisterRoutes(api, cfg)
	h.Product.RegisterRoutes(api)

	// shopper (role "user")
	h.User.RegisterRoutes(api, cfg)
	h.Cart.RegisterRoutes(api, cfg)
	h.Order.RegisterRoutes(api, cfg)
	h.Favorite.RegisterRoutes(api, cfg)

	// portal (role "bakery")
	h.BakeryProduct.RegisterRoutes(api, cfg)
	h.BakeryOrder.RegisterRoutes(api, cfg)
}
