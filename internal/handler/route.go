package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/model"
	"github.com/iliyamo/airline-booking/internal/repository"
)

type routeReq struct {
	SourceID      uint64 `json:"source"`
	DestinationID uint64 `json:"destination"`
	Distance      int    `json:"distance"`
}

func (r *routeReq) validate() map[string]string {
	problems := map[string]string{}
	if r.SourceID == 0 {
		problems["source"] = "required"
	}
	if r.DestinationID == 0 {
		problems["destination"] = "required"
	}
	if r.SourceID != 0 && r.SourceID == r.DestinationID {
		problems["destination"] = "must differ from source"
	}
	if r.Distance <= 0 {
		problems["distance"] = "must be positive"
	}
	return problems
}

// ListRoutes handles GET /v1/routes with ?source= and ?destination=
// airport filters.
func (h *CatalogHandler) ListRoutes(c echo.Context) error {
	f := repository.RouteFilter{
		SourceID:      queryID(c, "source"),
		DestinationID: queryID(c, "destination"),
	}
	out, err := h.Routes.List(c.Request().Context(), f)
	if err != nil {
		return repoError(c, err, "list routes failed")
	}
	return c.JSON(http.StatusOK, out)
}

// GetRoute handles GET /v1/routes/:id with both airports expanded.
func (h *CatalogHandler) GetRoute(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	out, err := h.Routes.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "load route failed")
	}
	return c.JSON(http.StatusOK, out)
}

// CreateRoute handles POST /v1/routes (admin).
func (h *CatalogHandler) CreateRoute(c echo.Context) error {
	var req routeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if problems := req.validate(); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, problems)
	}
	rt := &model.Route{
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
	}
	if err := h.Routes.Create(c.Request().Context(), rt); err != nil {
		return repoError(c, err, "create route failed")
	}
	out, err := h.Routes.GetByID(c.Request().Context(), rt.ID)
	if err != nil {
		return repoError(c, err, "load route failed")
	}
	return c.JSON(http.StatusCreated, out)
}

// UpdateRoute handles PUT /v1/routes/:id (admin).
func (h *CatalogHandler) UpdateRoute(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req routeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if problems := req.validate(); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, problems)
	}
	rt := &model.Route{
		ID:            id,
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
	}
	if err := h.Routes.Update(c.Request().Context(), rt); err != nil {
		return repoError(c, err, "update route failed")
	}
	out, err := h.Routes.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "load route failed")
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteRoute handles DELETE /v1/routes/:id (admin). Flights on the
// route cascade away, tickets with them.
func (h *CatalogHandler) DeleteRoute(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Routes.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err, "delete route failed")
	}
	return c.NoContent(http.StatusNoContent)
}
