package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fintrackhq/fintrack-api/internal/api/metrics"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// MonthlySummary returns twelve income-vs-expense rows for the given year.
// The year defaults to the current one.
//
// @Summary      Monthly income vs. expense summary
// @Tags         reports
// @Produce      json
// @Param        year  query     int  false  "Year (defaults to current)"
// @Success      200   {array}   domain.MonthlySummary
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/reports/monthly-summary [get]
func (h *ReportHandler) MonthlySummary(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	year := queryYear(c, time.Now().UTC().Year())

	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("monthly_summary"))
	defer timer.ObserveDuration()

	rows, err := h.service.MonthlySummary(c.Request().Context(), owner, year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// ExpensesByCategory returns per-category expense totals for one month.
// Year and month default to the current ones.
//
// @Summary      Expense totals grouped by category
// @Tags         reports
// @Produce      json
// @Param        year   query     int  false  "Year (defaults to current)"
// @Param        month  query     int  false  "Month 1-12 (defaults to current)"
// @Success      200    {array}   domain.CategoryTotal
// @Failure      401    {object}  errorResponse
// @Router       /api/v1/reports/expenses-by-category [get]
func (h *ReportHandler) ExpensesByCategory(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	year := queryYear(c, now.Year())
	month := queryMonth(c, now.Month())

	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("expenses_by_category"))
	defer timer.ObserveDuration()

	rows, err := h.service.ExpensesByCategory(c.Request().Context(), owner, year, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Dashboard returns the current-month snapshot shown after sign-in.
//
// @Summary      Current-month dashboard snapshot
// @Tags         reports
// @Produce      json
// @Success      200  {object}  ports.Dashboard
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return err
	}

	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("dashboard"))
	defer timer.ObserveDuration()

	dash, err := h.service.Dashboard(c.Request().Context(), owner, time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *ReportHandler) Register(g *echo.Group) {
	g.GET("/monthly-summary", h.MonthlySummary)
	g.GET("/expenses-by-category", h.ExpensesByCategory)
	g.GET("/dashboard", h.Dashboard)
}

func queryYear(c echo.Context, fallback int) int {
	if y, err := strconv.Atoi(c.QueryParam("year")); err == nil && y > 0 {
		return y
	}
	return fallback
}

func queryMonth(c echo.Context, fallback time.Month) time.Month {
	if m, err := strconv.Atoi(c.QueryParam("month")); err == nil && m >= 1 && m <= 12 {
		return time.Month(m)
	}
	return fallback
}
