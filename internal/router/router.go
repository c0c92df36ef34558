// Package router wires HTTP routes to handlers. Route groups: /healthz,
// /v1/auth (no auth), /v1 public catalog (no auth), /v1 customer surface
// (JWT) and /v1/admin (JWT + admin role).
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cinetix/backend/internal/handler"
	"github.com/cinetix/backend/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication beyond the
// health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register, login and
// the refresh variants need no session; /v1/me and token-less logout sit
// behind JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout with a refresh_token in the body needs no JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints: movies,
// theaters, showtimes and seat availability.
func RegisterPublic(e *echo.Echo, cat *handler.CatalogHandler) {
	e.GET("/v1/movies", cat.ListMovies)
	e.GET("/v1/movies/:id", cat.GetMovie)
	e.GET("/v1/theaters", cat.ListTheaters)
	e.GET("/v1/theaters/:id", cat.GetTheater)
	e.GET("/v1/showtimes", cat.ListShowtimes)
	e.GET("/v1/showtimes/:id", cat.GetShowtime)
	e.GET("/v1/showtimes/:id/seats", cat.ShowtimeSeats)
}
