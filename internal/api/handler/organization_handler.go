package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrackhq/fintrack-api/internal/api/metrics"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type OrganizationHandler struct {
	service ports.OrganizationService
}

func NewOrganizationHandler(service ports.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

type organizationRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Currency    string `json:"currency" validate:"required"`
}

func (r organizationRequest) toInput() ports.OrganizationInput {
	return ports.OrganizationInput{
		Name:        r.Name,
		Description: r.Description,
		Currency:    r.Currency,
	}
}

// Create inserts a new organization owned by the caller.
//
// @Summary      Create an organization
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        body  body      organizationRequest  true  "Organization details"
// @Success      201   {object}  domain.Organization
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/organizations [post]
func (h *OrganizationHandler) Create(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req organizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	org, err := h.service.Create(c.Request().Context(), owner, req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("organization").Inc()
	return c.JSON(http.StatusCreated, org)
}

// Get returns one organization by id.
//
// @Summary      Get an organization
// @Tags         organizations
// @Produce      json
// @Param        id   path      string  true  "Organization ID"
// @Success      200  {object}  domain.Organization
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/organizations/{id} [get]
func (h *OrganizationHandler) Get(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	org, err := h.service.Get(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, org)
}

// List returns the caller's organizations, paginated.
//
// @Summary      List organizations
// @Tags         organizations
// @Produce      json
// @Success      200  {object}  listResponse[domain.Organization]
// @Router       /api/v1/organizations [get]
func (h *OrganizationHandler) List(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), owner, listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(page))
}

// Update replaces the editable fields of an organization.
//
// @Summary      Update an organization
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Organization ID"
// @Param        body  body      organizationRequest  true  "Organization details"
// @Success      200   {object}  domain.Organization
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/organizations/{id} [put]
func (h *OrganizationHandler) Update(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req organizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	org, err := h.service.Update(c.Request().Context(), owner, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, org)
}

// Delete removes an organization.
//
// @Summary      Delete an organization
// @Tags         organizations
// @Param        id  path  string  true  "Organization ID"
// @Success      204  "organization deleted"
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/organizations/{id} [delete]
func (h *OrganizationHandler) Delete(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrganizationHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
