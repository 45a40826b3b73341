package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/model"
	"github.com/iliyamo/airline-booking/internal/repository"
)

type crewRoleReq struct {
	Name string `json:"name"`
}

type crewReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    uint64 `json:"role"`
}

func (r *crewReq) validate() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(r.FirstName) == "" {
		problems["first_name"] = "required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		problems["last_name"] = "required"
	}
	if r.RoleID == 0 {
		problems["role"] = "required"
	}
	return problems
}

// ----- crew roles -----

// ListCrewRoles handles GET /v1/crew-roles.
func (h *CatalogHandler) ListCrewRoles(c echo.Context) error {
	out, err := h.Crews.ListRoles(c.Request().Context())
	if err != nil {
		return repoError(c, err, "list crew roles failed")
	}
	return c.JSON(http.StatusOK, out)
}

// CreateCrewRole handles POST /v1/crew-roles (admin).
func (h *CatalogHandler) CreateCrewRole(c echo.Context) error {
	var req crewRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"name": "required"})
	}
	role := &model.CrewRole{Name: req.Name}
	if err := h.Crews.CreateRole(c.Request().Context(), role); err != nil {
		return repoError(c, err, "create crew role failed")
	}
	return c.JSON(http.StatusCreated, repository.CrewRoleView{ID: role.ID, Name: role.Name})
}

// UpdateCrewRole handles PUT /v1/crew-roles/:id (admin).
func (h *CatalogHandler) UpdateCrewRole(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req crewRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"name": "required"})
	}
	if err := h.Crews.UpdateRole(c.Request().Context(), id, req.Name); err != nil {
		return repoError(c, err, "update crew role failed")
	}
	return c.JSON(http.StatusOK, repository.CrewRoleView{ID: id, Name: req.Name})
}

// DeleteCrewRole handles DELETE /v1/crew-roles/:id (admin). Roles are
// protected: 409 while any crew member still holds the role.
func (h *CatalogHandler) DeleteCrewRole(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Crews.DeleteRole(c.Request().Context(), id); err != nil {
		return repoError(c, err, "delete crew role failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- crew members -----

// ListCrews handles GET /v1/crews with an optional ?role= filter.
func (h *CatalogHandler) ListCrews(c echo.Context) error {
	out, err := h.Crews.List(c.Request().Context(), queryID(c, "role"))
	if err != nil {
		return repoError(c, err, "list crews failed")
	}
	return c.JSON(http.StatusOK, out)
}

// CreateCrew handles POST /v1/crews (admin).
func (h *CatalogHandler) CreateCrew(c echo.Context) error {
	var req crewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if problems := req.validate(); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, problems)
	}
	member := &model.Crew{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		RoleID:    req.RoleID,
	}
	if err := h.Crews.Create(c.Request().Context(), member); err != nil {
		return repoError(c, err, "create crew failed")
	}
	out, err := h.Crews.GetByID(c.Request().Context(), member.ID)
	if err != nil {
		return repoError(c, err, "load crew failed")
	}
	return c.JSON(http.StatusCreated, out)
}

// UpdateCrew handles PUT /v1/crews/:id (admin).
func (h *CatalogHandler) UpdateCrew(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req crewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if problems := req.validate(); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, problems)
	}
	member := &model.Crew{
		ID:        id,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		RoleID:    req.RoleID,
	}
	if err := h.Crews.Update(c.Request().Context(), member); err != nil {
		return repoError(c, err, "update crew failed")
	}
	out, err := h.Crews.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "load crew failed")
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteCrew handles DELETE /v1/crews/:id (admin). Flight assignments
// of the member cascade away; flights themselves stay.
func (h *CatalogHandler) DeleteCrew(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Crews.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err, "delete crew failed")
	}
	return c.NoContent(http.StatusNoContent)
}
