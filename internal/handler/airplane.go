package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/model"
	"github.com/iliyamo/airline-booking/internal/repository"
)

type airplaneTypeReq struct {
	Name string `json:"name"`
}

type airplaneReq struct {
	Name           string `json:"name"`
	RowCount       int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	AirplaneTypeID uint64 `json:"airplane_type"`
}

func (r *airplaneReq) validate() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		problems["name"] = "required"
	}
	if r.RowCount <= 0 {
		problems["rows"] = "must be positive"
	}
	if r.SeatsInRow <= 0 {
		problems["seats_in_row"] = "must be positive"
	}
	if r.AirplaneTypeID == 0 {
		problems["airplane_type"] = "required"
	}
	return problems
}

// ----- airplane types -----

// ListAirplaneTypes handles GET /v1/airplane-types.
func (h *CatalogHandler) ListAirplaneTypes(c echo.Context) error {
	out, err := h.Airplanes.ListTypes(c.Request().Context())
	if err != nil {
		return repoError(c, err, "list airplane types failed")
	}
	return c.JSON(http.StatusOK, out)
}

// CreateAirplaneType handles POST /v1/airplane-types (admin).
func (h *CatalogHandler) CreateAirplaneType(c echo.Context) error {
	var req airplaneTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"name": "required"})
	}
	t := &model.AirplaneType{Name: req.Name}
	if err := h.Airplanes.CreateType(c.Request().Context(), t); err != nil {
		return repoError(c, err, "create airplane type failed")
	}
	return c.JSON(http.StatusCreated, repository.AirplaneTypeView{ID: t.ID, Name: t.Name})
}

// UpdateAirplaneType handles PUT /v1/airplane-types/:id (admin).
func (h *CatalogHandler) UpdateAirplaneType(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req airplaneTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"name": "required"})
	}
	if err := h.Airplanes.UpdateType(c.Request().Context(), id, req.Name); err != nil {
		return repoError(c, err, "update airplane type failed")
	}
	return c.JSON(http.StatusOK, repository.AirplaneTypeView{ID: id, Name: req.Name})
}

// DeleteAirplaneType handles DELETE /v1/airplane-types/:id (admin).
// Airplanes of the type cascade away.
func (h *CatalogHandler) DeleteAirplaneType(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Airplanes.DeleteType(c.Request().Context(), id); err != nil {
		return repoError(c, err, "delete airplane type failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- airplanes -----

// ListAirplanes handles GET /v1/airplanes with ?type= and ?name=
// filters.
func (h *CatalogHandler) ListAirplanes(c echo.Context) error {
	f := repository.AirplaneFilter{
		TypeID: queryID(c, "type"),
		Name:   c.QueryParam("name"),
	}
	out, err := h.Airplanes.ListAirplanes(c.Request().Context(), f)
	if err != nil {
		return repoError(c, err, "list airplanes failed")
	}
	return c.JSON(http.StatusOK, out)
}

// GetAirplane handles GET /v1/airplanes/:id, capacity included.
func (h *CatalogHandler) GetAirplane(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	out, err := h.Airplanes.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "load airplane failed")
	}
	return c.JSON(http.StatusOK, out)
}

// CreateAirplane handles POST /v1/airplanes (admin).
func (h *CatalogHandler) CreateAirplane(c echo.Context) error {
	var req airplaneReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if problems := req.validate(); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, problems)
	}
	a := &model.Airplane{
		Name:           strings.TrimSpace(req.Name),
		RowCount:       req.RowCount,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneTypeID,
	}
	if err := h.Airplanes.Create(c.Request().Context(), a); err != nil {
		return repoError(c, err, "create airplane failed")
	}
	out, err := h.Airplanes.GetByID(c.Request().Context(), a.ID)
	if err != nil {
		return repoError(c, err, "load airplane failed")
	}
	return c.JSON(http.StatusCreated, out)
}

// UpdateAirplane handles PUT /v1/airplanes/:id (admin).
func (h *CatalogHandler) UpdateAirplane(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req airplaneReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if problems := req.validate(); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, problems)
	}
	a := &model.Airplane{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		RowCount:       req.RowCount,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneTypeID,
	}
	if err := h.Airplanes.Update(c.Request().Context(), a); err != nil {
		return repoError(c, err, "update airplane failed")
	}
	out, err := h.Airplanes.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "load airplane failed")
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteAirplane handles DELETE /v1/airplanes/:id (admin). Flights
// scheduled on the airplane cascade away.
func (h *CatalogHandler) DeleteAirplane(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Airplanes.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err, "delete airplane failed")
	}
	return c.NoContent(http.StatusNoContent)
}
