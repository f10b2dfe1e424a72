package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/api/metrics"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type BankAccountHandler struct {
	service ports.BankAccountService
}

func NewBankAccountHandler(service ports.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{service: service}
}

type bankAccountRequest struct {
	Name           string          `json:"name" validate:"required"`
	BankName       string          `json:"bank_name" validate:"required"`
	AccountNumber  string          `json:"account_number"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

func (r bankAccountRequest) toInput() ports.BankAccountInput {
	return ports.BankAccountInput{
		Name:           r.Name,
		BankName:       r.BankName,
		AccountNumber:  r.AccountNumber,
		OpeningBalance: r.OpeningBalance,
	}
}

// Create inserts a new bank account owned by the caller.
//
// @Summary      Create a bank account
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Param        body  body      bankAccountRequest  true  "Account details"
// @Success      201   {object}  domain.BankAccount
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/bank-accounts [post]
func (h *BankAccountHandler) Create(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req bankAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Create(c.Request().Context(), owner, req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("bank_account").Inc()
	return c.JSON(http.StatusCreated, account)
}

// Get returns one bank account by id.
//
// @Summary      Get a bank account
// @Tags         bank-accounts
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  domain.BankAccount
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/bank-accounts/{id} [get]
func (h *BankAccountHandler) Get(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	account, err := h.service.Get(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// List returns the caller's bank accounts, paginated.
//
// @Summary      List bank accounts
// @Tags         bank-accounts
// @Produce      json
// @Success      200  {object}  listResponse[domain.BankAccount]
// @Router       /api/v1/bank-accounts [get]
func (h *BankAccountHandler) List(c echo.Context) error {
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

// Update replaces the editable fields of a bank account.
//
// @Summary      Update a bank account
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Account ID"
// @Param        body  body      bankAccountRequest  true  "Account details"
// @Success      200   {object}  domain.BankAccount
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/bank-accounts/{id} [put]
func (h *BankAccountHandler) Update(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	var req bankAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Update(c.Request().Context(), owner, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete removes a bank account.
//
// @Summary      Delete a bank account
// @Tags         bank-accounts
// @Param        id  path  string  true  "Account ID"
// @Success      204  "account deleted"
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/bank-accounts/{id} [delete]
func (h *BankAccountHandler) Delete(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BankAccountHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
