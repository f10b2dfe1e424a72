package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/api/metrics"
	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type TransactionHandler struct {
	service ports.TransactionService
}

func NewTransactionHandler(service ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type transactionRequest struct {
	Type          string          `json:"type" validate:"required,oneof=credit debit"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Date          time.Time       `json:"date" validate:"required"`
	BankAccountID string          `json:"bank_account_id"`
	Notes         string          `json:"notes"`
}

func (r transactionRequest) toInput() ports.TransactionInput {
	return ports.TransactionInput{
		Type:          domain.TransactionType(r.Type),
		Amount:        r.Amount,
		Date:          r.Date,
		BankAccountID: r.BankAccountID,
		Notes:         r.Notes,
	}
}

// Create records a new bank transaction for the caller.
//
// @Summary      Create a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body      transactionRequest  true  "Transaction details"
// @Success      201   {object}  domain.Transaction
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.service.Create(c.Request().Context(), owner, req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("transaction").Inc()
	return c.JSON(http.StatusCreated, tx)
}

// Get returns one transaction by id.
//
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  domain.Transaction
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	tx, err := h.service.Get(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tx)
}

// List returns the caller's transactions, paginated and optionally bounded by
// a from/to date range.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Success      200  {object}  listResponse[domain.Transaction]
// @Router       /api/v1/transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
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

// Update replaces the editable fields of a transaction.
//
// @Summary      Update a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Transaction ID"
// @Param        body  body      transactionRequest  true  "Transaction details"
// @Success      200   {object}  domain.Transaction
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.service.Update(c.Request().Context(), owner, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tx)
}

// Delete removes a transaction.
//
// @Summary      Delete a transaction
// @Tags         transactions
// @Param        id  path  string  true  "Transaction ID"
// @Success      204  "transaction deleted"
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TransactionHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
