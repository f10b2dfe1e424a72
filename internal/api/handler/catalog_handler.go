package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrackhq/fintrack-api/internal/api/metrics"
	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

// CatalogHandler serves one kind of lookup resource (tags, payment methods,
// expense categories or income sources). The router registers one instance
// per kind under its own path.
type CatalogHandler struct {
	service ports.CatalogService
	kind    domain.CatalogKind
}

func NewCatalogHandler(service ports.CatalogService, kind domain.CatalogKind) *CatalogHandler {
	return &CatalogHandler{service: service, kind: kind}
}

type catalogRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Create inserts a new catalog item owned by the caller.
//
// @Summary      Create a catalog item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      catalogRequest  true  "Item details"
// @Success      201   {object}  domain.CatalogItem
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
func (h *CatalogHandler) Create(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req catalogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.Create(c.Request().Context(), owner, h.kind, ports.CatalogInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues(string(h.kind)).Inc()
	return c.JSON(http.StatusCreated, item)
}

// Get returns one catalog item by id.
//
// @Summary      Get a catalog item
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  domain.CatalogItem
// @Failure      404  {object}  errorResponse
func (h *CatalogHandler) Get(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	item, err := h.service.Get(c.Request().Context(), owner, h.kind, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// List returns the caller's catalog items, paginated.
//
// @Summary      List catalog items
// @Tags         catalog
// @Produce      json
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Param        search  query     string  false  "Name filter"
// @Success      200     {object}  listResponse[domain.CatalogItem]
func (h *CatalogHandler) List(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), owner, h.kind, listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(page))
}

// Update replaces the editable fields of a catalog item.
//
// @Summary      Update a catalog item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Item ID"
// @Param        body  body      catalogRequest  true  "Item details"
// @Success      200   {object}  domain.CatalogItem
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
func (h *CatalogHandler) Update(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req catalogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.Update(c.Request().Context(), owner, h.kind, c.Param("id"), ports.CatalogInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes a catalog item.
//
// @Summary      Delete a catalog item
// @Tags         catalog
// @Param        id  path  string  true  "Item ID"
// @Success      204  "item deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
func (h *CatalogHandler) Delete(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), owner, h.kind, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Register mounts the CRUD routes on the given group.
func (h *CatalogHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
