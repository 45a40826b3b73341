package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/model"
	"github.com/iliyamo/airline-booking/internal/repository"
)

type flightReq struct {
	RouteID       uint64    `json:"route"`
	AirplaneID    uint64    `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []uint64  `json:"crews"`
}

func (r *flightReq) validate() map[string]string {
	problems := map[string]string{}
	if r.RouteID == 0 {
		problems["route"] = "required"
	}
	if r.AirplaneID == 0 {
		problems["airplane"] = "required"
	}
	if r.DepartureTime.IsZero() {
		problems["departure_time"] = "required"
	}
	if r.ArrivalTime.IsZero() {
		problems["arrival_time"] = "required"
	}
	if !r.DepartureTime.IsZero() && !r.ArrivalTime.IsZero() && !r.ArrivalTime.After(r.DepartureTime) {
		problems["arrival_time"] = "must be after departure_time"
	}
	return problems
}

// queryTime parses ?from= / ?to= values as RFC 3339 or bare dates.
func queryTime(c echo.Context, name string) time.Time {
	s := c.QueryParam(name)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

// ListFlights handles GET /v1/flights with ?route=, ?from= and ?to=
// departure-window filters. Each row carries tickets_available.
func (h *CatalogHandler) ListFlights(c echo.Context) error {
	f := repository.FlightFilter{
		RouteID: queryID(c, "route"),
		From:    queryTime(c, "from"),
		To:      queryTime(c, "to"),
	}
	out, err := h.Flights.List(c.Request().Context(), f)
	if err != nil {
		return repoError(c, err, "list flights failed")
	}
	return c.JSON(http.StatusOK, out)
}

// GetFlight handles GET /v1/flights/:id with nested route, airplane,
// crews and the taken seat list.
func (h *CatalogHandler) GetFlight(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	out, err := h.Flights.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "load flight failed")
	}
	return c.JSON(http.StatusOK, out)
}

// CreateFlight handles POST /v1/flights (admin), crew assignment
// included.
func (h *CatalogHandler) CreateFlight(c echo.Context) error {
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if problems := req.validate(); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, problems)
	}
	f := &model.Flight{
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
		CrewIDs:       req.CrewIDs,
	}
	if err := h.Flights.Create(c.Request().Context(), f); err != nil {
		return repoError(c, err, "create flight failed")
	}
	out, err := h.Flights.GetByID(c.Request().Context(), f.ID)
	if err != nil {
		return repoError(c, err, "load flight failed")
	}
	return c.JSON(http.StatusCreated, out)
}

// UpdateFlight handles PUT /v1/flights/:id (admin). The crew set is
// replaced wholesale with the submitted list.
func (h *CatalogHandler) UpdateFlight(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if problems := req.validate(); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, problems)
	}
	f := &model.Flight{
		ID:            id,
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
		CrewIDs:       req.CrewIDs,
	}
	if err := h.Flights.Update(c.Request().Context(), f); err != nil {
		return repoError(c, err, "update flight failed")
	}
	out, err := h.Flights.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "load flight failed")
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteFlight handles DELETE /v1/flights/:id (admin). Tickets on the
// flight cascade away; the orders that held them stay, possibly empty.
func (h *CatalogHandler) DeleteFlight(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Flights.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err, "delete flight failed")
	}
	return c.NoContent(http.StatusNoContent)
}
