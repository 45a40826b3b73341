// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/handler"
	"github.com/iliyamo/airline-booking/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication and no
// dependencies beyond the Echo instance itself.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the /v1/auth endpoints plus the protected
// /v1/me and /v1/logout. Logout is reachable both ways: under
// /v1/auth with a refresh_token body and under the JWT group where a
// bearer token alone revokes every session of the user.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)
}
