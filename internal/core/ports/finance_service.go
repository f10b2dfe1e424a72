package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
)

// Inputs deliberately carry no owner field: the owner is always stamped from
// the caller's session, never taken from a request body.

type CatalogInput struct {
	Name        string
	Description string
}

type OrganizationInput struct {
	Name        string
	Description string
	Currency    string
}

type BankAccountInput struct {
	Name           string
	BankName       string
	AccountNumber  string
	OpeningBalance decimal.Decimal
}

type BudgetInput struct {
	Name       string
	Amount     decimal.Decimal
	Period     domain.BudgetPeriod
	CategoryID string
}

type ExpenseInput struct {
	Amount          decimal.Decimal
	Date            time.Time
	CategoryID      string
	PaymentMethodID string
	TagIDs          []string
	Notes           string
}

type IncomeInput struct {
	Amount        decimal.Decimal
	Date          time.Time
	SourceID      string
	BankAccountID string
	Notes         string
}

type TransactionInput struct {
	Type          domain.TransactionType
	Amount        decimal.Decimal
	Date          time.Time
	BankAccountID string
	Notes         string
}

// CatalogService is the use-case surface shared by tags, payment methods,
// expense categories and income sources.
type CatalogService interface {
	Create(ctx context.Context, caller domain.OwnerID, kind domain.CatalogKind, in CatalogInput) (*domain.CatalogItem, error)
	Get(ctx context.Context, caller domain.OwnerID, kind domain.CatalogKind, id string) (*domain.CatalogItem, error)
	List(ctx context.Context, caller domain.OwnerID, kind domain.CatalogKind, q ListQuery) (Page[*domain.CatalogItem], error)
	Update(ctx context.Context, caller domain.OwnerID, kind domain.CatalogKind, id string, in CatalogInput) (*domain.CatalogItem, error)
	Delete(ctx context.Context, caller domain.OwnerID, kind domain.CatalogKind, id string) error
}

type OrganizationService interface {
	Create(ctx context.Context, caller domain.OwnerID, in OrganizationInput) (*domain.Organization, error)
	Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.Organization, error)
	List(ctx context.Context, caller domain.OwnerID, q ListQuery) (Page[*domain.Organization], error)
	Update(ctx context.Context, caller domain.OwnerID, id string, in OrganizationInput) (*domain.Organization, error)
	Delete(ctx context.Context, caller domain.OwnerID, id string) error
}

type BankAccountService interface {
	Create(ctx context.Context, caller domain.OwnerID, in BankAccountInput) (*domain.BankAccount, error)
	Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.BankAccount, error)
	List(ctx context.Context, caller domain.OwnerID, q ListQuery) (Page[*domain.BankAccount], error)
	Update(ctx context.Context, caller domain.OwnerID, id string, in BankAccountInput) (*domain.BankAccount, error)
	Delete(ctx context.Context, caller domain.OwnerID, id string) error
}

type BudgetService interface {
	Create(ctx context.Context, caller domain.OwnerID, in BudgetInput) (*domain.Budget, error)
	Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.Budget, error)
	List(ctx context.Context, caller domain.OwnerID, q ListQuery) (Page[*domain.Budget], error)
	Update(ctx context.Context, caller domain.OwnerID, id string, in BudgetInput) (*domain.Budget, error)
	Delete(ctx context.Context, caller domain.OwnerID, id string) error
}

type ExpenseService interface {
	Create(ctx context.Context, caller domain.OwnerID, in ExpenseInput) (*domain.Expense, error)
	Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.Expense, error)
	List(ctx context.Context, caller domain.OwnerID, q ListQuery, r DateRange) (Page[*domain.Expense], error)
	Update(ctx context.Context, caller domain.OwnerID, id string, in ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, caller domain.OwnerID, id string) error
}

type IncomeService interface {
	Create(ctx context.Context, caller domain.OwnerID, in IncomeInput) (*domain.Income, error)
	Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.Income, error)
	List(ctx context.Context, caller domain.OwnerID, q ListQuery, r DateRange) (Page[*domain.Income], error)
	Update(ctx context.Context, caller domain.OwnerID, id string, in IncomeInput) (*domain.Income, error)
	Delete(ctx context.Context, caller domain.OwnerID, id string) error
}

type TransactionService interface {
	Create(ctx context.Context, caller domain.OwnerID, in TransactionInput) (*domain.Transaction, error)
	Get(ctx context.Context, caller domain.OwnerID, id string) (*domain.Transaction, error)
	List(ctx context.Context, caller domain.OwnerID, q ListQuery, r DateRange) (Page[*domain.Transaction], error)
	Update(ctx context.Context, caller domain.OwnerID, id string, in TransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, caller domain.OwnerID, id string) error
}

// Dashboard is the current-month snapshot shown after sign-in.
// RecentExpenses and RecentIncomes count the month's records so far.
type Dashboard struct {
	Year           int
	Month          time.Month
	Income         decimal.Decimal
	Expenses       decimal.Decimal
	Net            decimal.Decimal
	RecentExpenses int64
	RecentIncomes  int64
	TopCategories  []domain.CategoryTotal
}

// ReportService serves the read-only aggregate views.
type ReportService interface {
	MonthlySummary(ctx context.Context, caller domain.OwnerID, year int) ([]domain.MonthlySummary, error)
	ExpensesByCategory(ctx context.Context, caller domain.OwnerID, year int, month time.Month) ([]domain.CategoryTotal, error)
	Dashboard(ctx context.Context, caller domain.OwnerID, now time.Time) (*Dashboard, error)
}
