package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/handler"
	"github.com/iliyamo/airline-booking/internal/middleware"
)

// RegisterOrders registers the order endpoints. Any authenticated
// role may buy tickets and read its own orders.
func RegisterOrders(e *echo.Echo, h *handler.OrderHandler, jwtSecret string) {
	g := e.Group("/v1/orders", middleware.JWTAuth(jwtSecret))
	g.POST("", h.CreateOrder)
	g.GET("", h.ListOrders)
	g.GET("/:id", h.GetOrder)
}
