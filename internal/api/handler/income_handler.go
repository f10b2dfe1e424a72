package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/api/metrics"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type IncomeHandler struct {
	service ports.IncomeService
}

func NewIncomeHandler(service ports.IncomeService) *IncomeHandler {
	return &IncomeHandler{service: service}
}

type incomeRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Date          time.Time       `json:"date" validate:"required"`
	SourceID      string          `json:"source_id"`
	BankAccountID string          `json:"bank_account_id"`
	Notes         string          `json:"notes"`
}

func (r incomeRequest) toInput() ports.IncomeInput {
	return ports.IncomeInput{
		Amount:        r.Amount,
		Date:          r.Date,
		SourceID:      r.SourceID,
		BankAccountID: r.BankAccountID,
		Notes:         r.Notes,
	}
}

// Create records a new income entry for the caller.
//
// @Summary      Create an income entry
// @Tags         incomes
// @Accept       json
// @Produce      json
// @Param        body  body      incomeRequest  true  "Income details"
// @Success      201   {object}  domain.Income
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/incomes [post]
func (h *IncomeHandler) Create(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req incomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	income, err := h.service.Create(c.Request().Context(), owner, req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("income").Inc()
	return c.JSON(http.StatusCreated, income)
}

// Get returns one income entry by id.
//
// @Summary      Get an income entry
// @Tags         incomes
// @Produce      json
// @Param        id   path      string  true  "Income ID"
// @Success      200  {object}  domain.Income
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	income, err := h.service.Get(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, income)
}

// List returns the caller's income entries, paginated and optionally bounded
// by a from/to date range.
//
// @Summary      List income entries
// @Tags         incomes
// @Produce      json
// @Success      200  {object}  listResponse[domain.Income]
// @Router       /api/v1/incomes [get]
func (h *IncomeHandler) List(c echo.Context) error {
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

// Update replaces the editable fields of an income entry.
//
// @Summary      Update an income entry
// @Tags         incomes
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Income ID"
// @Param        body  body      incomeRequest  true  "Income details"
// @Success      200   {object}  domain.Income
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/incomes/{id} [put]
func (h *IncomeHandler) Update(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req incomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	income, err := h.service.Update(c.Request().Context(), owner, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, income)
}

// Delete removes an income entry.
//
// @Summary      Delete an income entry
// @Tags         incomes
// @Param        id  path  string  true  "Income ID"
// @Success      204  "income deleted"
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *IncomeHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
