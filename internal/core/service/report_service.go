package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

const dashboardTopCategories = 5

// ReportService serves read-only aggregates. All heavy lifting happens in
// the repository's aggregation pipelines; this layer merges and shapes.
type ReportService struct {
	repo ports.ReportRepository
	log  zerolog.Logger
}

func NewReportService(repo ports.ReportRepository, log zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, log: log}
}

// MonthlySummary returns one row per calendar month of the given year,
// including months with no activity.
func (s *ReportService) MonthlySummary(ctx context.Context, caller domain.OwnerID, year int) ([]domain.MonthlySummary, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	incomes, err := s.repo.MonthlyIncomeTotals(ctx, caller, year)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.MonthlyExpenseTotals(ctx, caller, year)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.MonthlySummary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		in := incomes[m]
		out := expenses[m]
		rows = append(rows, domain.MonthlySummary{
			Year:     year,
			Month:    m,
			Income:   in,
			Expenses: out,
			Net:      in.Sub(out),
		})
	}
	return rows, nil
}

func (s *ReportService) ExpensesByCategory(ctx context.Context, caller domain.OwnerID, year int, month time.Month) ([]domain.CategoryTotal, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ExpensesByCategory(ctx, caller, year, month)
}

// Dashboard builds the current-month snapshot relative to now.
func (s *ReportService) Dashboard(ctx context.Context, caller domain.OwnerID, now time.Time) (*ports.Dashboard, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	year, month := now.UTC().Year(), now.UTC().Month()

	incomes, err := s.repo.MonthlyIncomeTotals(ctx, caller, year)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.MonthlyExpenseTotals(ctx, caller, year)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ExpensesByCategory(ctx, caller, year, month)
	if err != nil {
		return nil, err
	}
	if len(categories) > dashboardTopCategories {
		categories = categories[:dashboardTopCategories]
	}

	// Activity so far this month.
	monthSoFar := ports.DateRange{
		From: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		To:   now.UTC(),
	}
	expenseCount, err := s.repo.ExpenseCount(ctx, caller, monthSoFar)
	if err != nil {
		return nil, err
	}
	incomeCount, err := s.repo.IncomeCount(ctx, caller, monthSoFar)
	if err != nil {
		return nil, err
	}

	in := incomes[month]
	out := expenses[month]
	return &ports.Dashboard{
		Year:           year,
		Month:          month,
		Income:         in,
		Expenses:       out,
		Net:            in.Sub(out),
		RecentExpenses: expenseCount,
		RecentIncomes:  incomeCount,
		TopCategories:  categories,
	}, nil
}
