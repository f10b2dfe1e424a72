package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/api/metrics"
	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type BudgetHandler struct {
	service ports.BudgetService
}

func NewBudgetHandler(service ports.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

type budgetRequest struct {
	Name       string          `json:"name" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	Period     string          `json:"period" validate:"required,oneof=monthly yearly"`
	CategoryID string          `json:"category_id"`
}

func (r budgetRequest) toInput() ports.BudgetInput {
	return ports.BudgetInput{
		Name:       r.Name,
		Amount:     r.Amount,
		Period:     domain.BudgetPeriod(r.Period),
		CategoryID: r.CategoryID,
	}
}

// Create inserts a new budget owned by the caller.
//
// @Summary      Create a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        body  body      budgetRequest  true  "Budget details"
// @Success      201   {object}  domain.Budget
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/budgets [post]
func (h *BudgetHandler) Create(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req budgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	budget, err := h.service.Create(c.Request().Context(), owner, req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("budget").Inc()
	return c.JSON(http.StatusCreated, budget)
}

// Get returns one budget by id.
//
// @Summary      Get a budget
// @Tags         budgets
// @Produce      json
// @Param        id   path      string  true  "Budget ID"
// @Success      200  {object}  domain.Budget
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/budgets/{id} [get]
func (h *BudgetHandler) Get(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	budget, err := h.service.Get(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, budget)
}

// List returns the caller's budgets, paginated.
//
// @Summary      List budgets
// @Tags         budgets
// @Produce      json
// @Success      200  {object}  listResponse[domain.Budget]
// @Router       /api/v1/budgets [get]
func (h *BudgetHandler) List(c echo.Context) error {
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

// Update replaces the editable fields of a budget.
//
// @Summary      Update a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Budget ID"
// @Param        body  body      budgetRequest  true  "Budget details"
// @Success      200   {object}  domain.Budget
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req budgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	budget, err := h.service.Update(c.Request().Context(), owner, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, budget)
}

// Delete removes a budget.
//
// @Summary      Delete a budget
// @Tags         budgets
// @Param        id  path  string  true  "Budget ID"
// @Success      204  "budget deleted"
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BudgetHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
