package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/model"
	"github.com/iliyamo/airline-booking/internal/repository"
)

type countryReq struct {
	Name string `json:"name"`
}

// ListCountries handles GET /v1/countries with an optional ?name=
// substring filter.
func (h *CatalogHandler) ListCountries(c echo.Context) error {
	out, err := h.Countries.List(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return repoError(c, err, "list countries failed")
	}
	return c.JSON(http.StatusOK, out)
}

// CreateCountry handles POST /v1/countries (admin).
func (h *CatalogHandler) CreateCountry(c echo.Context) error {
	var req countryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"name": "required"})
	}
	country := &model.Country{Name: req.Name}
	if err := h.Countries.Create(c.Request().Context(), country); err != nil {
		return repoError(c, err, "create country failed")
	}
	return c.JSON(http.StatusCreated, repository.CountryView{ID: country.ID, Name: country.Name})
}

// UpdateCountry handles PUT /v1/countries/:id (admin).
func (h *CatalogHandler) UpdateCountry(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req countryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"name": "required"})
	}
	if err := h.Countries.Update(c.Request().Context(), id, req.Name); err != nil {
		return repoError(c, err, "update country failed")
	}
	out, err := h.Countries.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "load country failed")
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteCountry handles DELETE /v1/countries/:id (admin). Dependent
// airports, routes, flights and tickets go with it.
func (h *CatalogHandler) DeleteCountry(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Countries.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err, "delete country failed")
	}
	return c.NoContent(http.StatusNoContent)
}
