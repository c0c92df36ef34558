package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cinetix/backend/internal/handler"
	"github.com/cinetix/backend/internal/middleware"
)

// RegisterAdmin registers the back-office routes behind the admin role:
// catalog CRUD, booking oversight and payment history.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin", middleware.JWTAuth(jwtSecret), middleware.RequireRole("admin"))

	g.POST("/movies", a.CreateMovie)
	g.PUT("/movies/:id", a.UpdateMovie)
	g.DELETE("/movies/:id", a.DeleteMovie)

	g.POST("/theaters", a.CreateTheater)
	g.PUT("/theaters/:id", a.UpdateTheater)
	g.DELETE("/theaters/:id", a.DeleteTheater)

	g.POST("/showtimes", a.CreateShowtime)
	g.PUT("/showtimes/:id", a.UpdateShowtime)
	g.DELETE("/showtimes/:id", a.DeleteShowtime)

	g.GET("/bookings", a.ListBookings)
	g.POST("/bookings/:id/cancel", a.CancelBooking)
	g.GET("/payments", a.ListPayments)
}
