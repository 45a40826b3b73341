package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/model"
	"github.com/iliyamo/airline-booking/internal/repository"
)

type airportReq struct {
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
	CountryID      uint64 `json:"country"`
}

func (r *airportReq) validate() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		problems["name"] = "required"
	}
	if strings.TrimSpace(r.ClosestBigCity) == "" {
		problems["closest_big_city"] = "required"
	}
	if r.CountryID == 0 {
		problems["country"] = "required"
	}
	return problems
}

// ListAirports handles GET /v1/airports with ?country= and ?name=
// filters.
func (h *CatalogHandler) ListAirports(c echo.Context) error {
	f := repository.AirportFilter{
		CountryID: queryID(c, "country"),
		Name:      c.QueryParam("name"),
	}
	out, err := h.Airports.List(c.Request().Context(), f)
	if err != nil {
		return repoError(c, err, "list airports failed")
	}
	return c.JSON(http.StatusOK, out)
}

// GetAirport handles GET /v1/airports/:id.
func (h *CatalogHandler) GetAirport(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	out, err := h.Airports.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "load airport failed")
	}
	return c.JSON(http.StatusOK, out)
}

// CreateAirport handles POST /v1/airports (admin).
func (h *CatalogHandler) CreateAirport(c echo.Context) error {
	var req airportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if problems := req.validate(); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, problems)
	}
	a := &model.Airport{
		Name:           strings.TrimSpace(req.Name),
		ClosestBigCity: strings.TrimSpace(req.ClosestBigCity),
		CountryID:      req.CountryID,
	}
	if err := h.Airports.Create(c.Request().Context(), a); err != nil {
		return repoError(c, err, "create airport failed")
	}
	out, err := h.Airports.GetByID(c.Request().Context(), a.ID)
	if err != nil {
		return repoError(c, err, "load airport failed")
	}
	return c.JSON(http.StatusCreated, out)
}

// UpdateAirport handles PUT /v1/airports/:id (admin).
func (h *CatalogHandler) UpdateAirport(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req airportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if problems := req.validate(); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, problems)
	}
	a := &model.Airport{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		ClosestBigCity: strings.TrimSpace(req.ClosestBigCity),
		CountryID:      req.CountryID,
	}
	if err := h.Airports.Update(c.Request().Context(), a); err != nil {
		return repoError(c, err, "update airport failed")
	}
	out, err := h.Airports.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "load airport failed")
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteAirport handles DELETE /v1/airports/:id (admin). Routes using
// the airport cascade away, flights and tickets with them.
func (h *CatalogHandler) DeleteAirport(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Airports.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err, "delete airport failed")
	}
	return c.NoContent(http.StatusNoContent)
}
