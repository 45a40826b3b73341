package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/handler"
	"github.com/iliyamo/airline-booking/internal/middleware"
)

// RegisterCatalog registers the catalog surface: public reads behind
// the response cache and rate limiter, writes behind JWT plus the
// ADMIN role.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, public ...echo.MiddlewareFunc) {
	read := e.Group("/v1", public...)
	read.GET("/countries", h.ListCountries)
	read.GET("/airports", h.ListAirports)
	read.GET("/airports/:id", h.GetAirport)
	read.GET("/routes", h.ListRoutes)
	read.GET("/routes/:id", h.GetRoute)
	read.GET("/airplane-types", h.ListAirplaneTypes)
	read.GET("/airplanes", h.ListAirplanes)
	read.GET("/airplanes/:id", h.GetAirplane)
	read.GET("/crew-roles", h.ListCrewRoles)
	read.GET("/crews", h.ListCrews)
	read.GET("/flights", h.ListFlights)
	read.GET("/flights/:id", h.GetFlight)

	admin := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ADMIN"))
	admin.POST("/countries", h.CreateCountry)
	admin.PUT("/countries/:id", h.UpdateCountry)
	admin.DELETE("/countries/:id", h.DeleteCountry)
	admin.POST("/airports", h.CreateAirport)
	admin.PUT("/airports/:id", h.UpdateAirport)
	admin.DELETE("/airports/:id", h.DeleteAirport)
	admin.POST("/routes", h.CreateRoute)
	admin.PUT("/routes/:id", h.UpdateRoute)
	admin.DELETE("/routes/:id", h.DeleteRoute)
	admin.POST("/airplane-types", h.CreateAirplaneType)
	admin.PUT("/airplane-types/:id", h.UpdateAirplaneType)
	admin.DELETE("/airplane-types/:id", h.DeleteAirplaneType)
	admin.POST("/airplanes", h.CreateAirplane)
	admin.PUT("/airplanes/:id", h.UpdateAirplane)
	admin.DELETE("/airplanes/:id", h.DeleteAirplane)
	admin.POST("/crew-roles", h.CreateCrewRole)
	admin.PUT("/crew-roles/:id", h.UpdateCrewRole)
	admin.DELETE("/crew-roles/:id", h.DeleteCrewRole)
	admin.POST("/crews", h.CreateCrew)
	admin.PUT("/crews/:id", h.UpdateCrew)
	admin.DELETE("/crews/:id", h.DeleteCrew)
	admin.POST("/flights", h.CreateFlight)
	admin.PUT("/flights/:id", h.UpdateFlight)
	admin.DELETE("/flights/:id", h.DeleteFlight)
}
