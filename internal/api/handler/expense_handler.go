package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/api/metrics"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

type expenseRequest struct {
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	Date            time.Time       `json:"date" validate:"required"`
	CategoryID      string          `json:"category_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	TagIDs          []string        `json:"tag_ids"`
	Notes           string          `json:"notes"`
}

func (r expenseRequest) toInput() ports.ExpenseInput {
	return ports.ExpenseInput{
		Amount:          r.Amount,
		Date:            r.Date,
		CategoryID:      r.CategoryID,
		PaymentMethodID: r.PaymentMethodID,
		TagIDs:          r.TagIDs,
		Notes:           r.Notes,
	}
}

// Create records a new expense for the caller.
//
// @Summary      Create an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body      expenseRequest  true  "Expense details"
// @Success      201   {object}  domain.Expense
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expense, err := h.service.Create(c.Request().Context(), owner, req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("expense").Inc()
	return c.JSON(http.StatusCreated, expense)
}

// Get returns one expense by id.
//
// @Summary      Get an expense
// @Tags         expenses
// @Produce      json
// @Param        id   path      string  true  "Expense ID"
// @Success      200  {object}  domain.Expense
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	expense, err := h.service.Get(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

// List returns the caller's expenses, paginated and optionally bounded by a
// from/to date range.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Param        search  query     string  false  "Notes filter"
// @Param        from    query     string  false  "Start date (inclusive)"
// @Param        to      query     string  false  "End date (inclusive)"
// @Success      200     {object}  listResponse[domain.Expense]
// @Router       /api/v1/expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), owner, listQuery(c), dateRange(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(page))
}

// Update replaces the editable fields of an expense.
//
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Expense ID"
// @Param        body  body      expenseRequest  true  "Expense details"
// @Success      200   {object}  domain.Expense
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expense, err := h.service.Update(c.Request().Context(), owner, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

// Delete removes an expense.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Param        id  path  string  true  "Expense ID"
// @Success      204  "expense deleted"
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ExpenseHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
