package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cinetix/backend/internal/handler"
	"github.com/cinetix/backend/internal/middleware"
)

// RegisterCustomer registers the booking surface. Any authenticated role may
// book; admins booking their own tickets is fine.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/bookings", middleware.JWTAuth(jwtSecret), middleware.RequireRole("user", "admin"))
	g.POST("", b.Create)
	g.GET("", b.ListMine)
	g.GET("/:id", b.GetMine)
	g.POST("/:id/payment", b.Pay)
}
