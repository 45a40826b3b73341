package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/repository"
)

// CatalogHandler bundles the repositories behind the catalog endpoints:
// public reads and admin writes over countries, airports, routes,
// airplanes, crews and flights.
type CatalogHandler struct {
	Countries *repository.CountryRepo
	Airports  *repository.AirportRepo
	Routes    *repository.RouteRepo
	Airplanes *repository.AirplaneRepo
	Crews     *repository.CrewRepo
	Flights   *repository.FlightRepo
}

func NewCatalogHandler(
	countries *repository.CountryRepo,
	airports *repository.AirportRepo,
	routes *repository.RouteRepo,
	airplanes *repository.AirplaneRepo,
	crews *repository.CrewRepo,
	flights *repository.FlightRepo,
) *CatalogHandler {
	if countries == nil || airports == nil || routes == nil ||
		airplanes == nil || crews == nil || flights == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{
		Countries: countries,
		Airports:  airports,
		Routes:    routes,
		Airplanes: airplanes,
		Crews:     crews,
		Flights:   flights,
	}
}

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64. JWT numeric claims arrive as float64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// queryID parses an optional numeric query parameter; absent or
// malformed values come back as zero.
func queryID(c echo.Context, name string) uint64 {
	n, _ := strconv.ParseUint(c.QueryParam(name), 10, 64)
	return n
}

// repoError maps repository sentinels onto HTTP responses. Unknown
// errors become 500 with the given fallback message.
func repoError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows),
		errors.Is(err, repository.ErrCountryNotFound),
		errors.Is(err, repository.ErrAirportNotFound),
		errors.Is(err, repository.ErrRouteNotFound),
		errors.Is(err, repository.ErrAirplaneTypeNotFound),
		errors.Is(err, repository.ErrAirplaneNotFound),
		errors.Is(err, repository.ErrCrewRoleNotFound),
		errors.Is(err, repository.ErrCrewNotFound),
		errors.Is(err, repository.ErrFlightNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
}
