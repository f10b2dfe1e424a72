package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type stubReportRepo struct {
	incomes      map[time.Month]decimal.Decimal
	expenses     map[time.Month]decimal.Decimal
	categories   []domain.CategoryTotal
	expenseCount int64
	incomeCount  int64
	lastCountR   ports.DateRange
}

func (r *stubReportRepo) MonthlyIncomeTotals(_ context.Context, _ domain.OwnerID, _ int) (map[time.Month]decimal.Decimal, error) {
	return r.incomes, nil
}

func (r *stubReportRepo) MonthlyExpenseTotals(_ context.Context, _ domain.OwnerID, _ int) (map[time.Month]decimal.Decimal, error) {
	return r.expenses, nil
}

func (r *stubReportRepo) ExpensesByCategory(_ context.Context, _ domain.OwnerID, _ int, _ time.Month) ([]domain.CategoryTotal, error) {
	return r.categories, nil
}

func (r *stubReportRepo) ExpenseCount(_ context.Context, _ domain.OwnerID, dr ports.DateRange) (int64, error) {
	r.lastCountR = dr
	return r.expenseCount, nil
}

func (r *stubReportRepo) IncomeCount(_ context.Context, _ domain.OwnerID, dr ports.DateRange) (int64, error) {
	return r.incomeCount, nil
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReportService_MonthlySummary_FillsAllMonths(t *testing.T) {
	repo := &stubReportRepo{
		incomes:  map[time.Month]decimal.Decimal{time.March: d("1200.50")},
		expenses: map[time.Month]decimal.Decimal{time.March: d("200.25"), time.April: d("99.99")},
	}
	svc := NewReportService(repo, zerolog.Nop())

	rows, err := svc.MonthlySummary(context.Background(), "acc_1", 2026)
	require.NoError(t, err)
	require.Len(t, rows, 12)

	march := rows[2]
	assert.Equal(t, time.March, march.Month)
	assert.True(t, march.Income.Equal(d("1200.50")), "march income %s", march.Income)
	assert.True(t, march.Expenses.Equal(d("200.25")), "march expenses %s", march.Expenses)
	assert.True(t, march.Net.Equal(d("1000.25")), "march net %s", march.Net)

	// Expense-only months net negative.
	april := rows[3]
	assert.True(t, april.Net.Equal(d("-99.99")), "april net %s", april.Net)

	// Quiet months are present and zero-valued.
	january := rows[0]
	assert.Equal(t, 2026, january.Year)
	assert.True(t, january.Income.IsZero() && january.Expenses.IsZero() && january.Net.IsZero())
}

func TestReportService_MonthlySummary_Anonymous(t *testing.T) {
	svc := NewReportService(&stubReportRepo{}, zerolog.Nop())

	_, err := svc.MonthlySummary(context.Background(), "", 2026)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestReportService_Dashboard(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	categories := []domain.CategoryTotal{
		{CategoryID: "c1", Total: d("500"), Count: 5},
		{CategoryID: "c2", Total: d("400"), Count: 4},
		{CategoryID: "c3", Total: d("300"), Count: 3},
		{CategoryID: "c4", Total: d("200"), Count: 2},
		{CategoryID: "c5", Total: d("100"), Count: 1},
		{CategoryID: "c6", Total: d("50"), Count: 1},
	}
	repo := &stubReportRepo{
		incomes:      map[time.Month]decimal.Decimal{time.September: d("3000")},
		expenses:     map[time.Month]decimal.Decimal{time.September: d("1550")},
		categories:   categories,
		expenseCount: 16,
		incomeCount:  2,
	}
	svc := NewReportService(repo, zerolog.Nop())

	dash, err := svc.Dashboard(context.Background(), "acc_1", now)
	require.NoError(t, err)

	assert.Equal(t, 2026, dash.Year)
	assert.Equal(t, time.September, dash.Month)
	assert.True(t, dash.Income.Equal(d("3000")))
	assert.True(t, dash.Expenses.Equal(d("1550")))
	assert.True(t, dash.Net.Equal(d("1450")))

	// Recent activity covers the current month up to now.
	assert.Equal(t, int64(16), dash.RecentExpenses)
	assert.Equal(t, int64(2), dash.RecentIncomes)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), repo.lastCountR.From)
	assert.Equal(t, now, repo.lastCountR.To)

	// The snapshot keeps only the top spending categories.
	require.Len(t, dash.TopCategories, dashboardTopCategories)
	assert.Equal(t, "c1", dash.TopCategories[0].CategoryID)
	assert.Equal(t, "c5", dash.TopCategories[4].CategoryID)
}

func TestReportService_Dashboard_Anonymous(t *testing.T) {
	svc := NewReportService(&stubReportRepo{}, zerolog.Nop())

	_, err := svc.Dashboard(context.Background(), "", time.Now())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestReportService_ExpensesByCategory(t *testing.T) {
	repo := &stubReportRepo{categories: []domain.CategoryTotal{{CategoryID: "c1", Total: d("10"), Count: 2}}}
	svc := NewReportService(repo, zerolog.Nop())

	rows, err := svc.ExpensesByCategory(context.Background(), "acc_1", 2026, time.May)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "c1", rows[0].CategoryID)

	_, err = svc.ExpensesByCategory(context.Background(), "", 2026, time.May)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
