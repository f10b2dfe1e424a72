package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListQuery carries the common pagination/search parameters for list endpoints.
type ListQuery struct {
	Search string // optional: partial, case-insensitive match on the entity's name field
	Page   int    // 1-based
	Limit  int    // rows per page, capped at maxPageLimit
}

// Normalize applies defaults and caps. Repositories receive normalized queries.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	return q
}

// DateRange optionally bounds list queries on dated entities (inclusive).
type DateRange struct {
	From time.Time
	To   time.Time
}

// Page is one page of list results plus pagination metadata.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage assembles a Page from repository output and the normalized query.
func NewPage[T any](items []T, total int64, q ListQuery) Page[T] {
	pages := int(total) / q.Limit
	if int(total)%q.Limit != 0 {
		pages++
	}
	return Page[T]{Items: items, Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages}
}

// CatalogRepository persists the four catalog kinds in one collection,
// discriminated by kind.
type CatalogRepository interface {
	Insert(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error)
	// FindByID retrieves an item by id. When owner is non-empty the query is
	// additionally filtered by owner (reads are owner-scoped in the query).
	FindByID(ctx context.Context, kind domain.CatalogKind, id string, owner domain.OwnerID) (*domain.CatalogItem, error)
	List(ctx context.Context, kind domain.CatalogKind, owner domain.OwnerID, q ListQuery) ([]*domain.CatalogItem, int64, error)
	Update(ctx context.Context, item *domain.CatalogItem) error
	Delete(ctx context.Context, kind domain.CatalogKind, id string) error
}

type OrganizationRepository interface {
	Insert(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	FindByID(ctx context.Context, id string, owner domain.OwnerID) (*domain.Organization, error)
	List(ctx context.Context, owner domain.OwnerID, q ListQuery) ([]*domain.Organization, int64, error)
	Update(ctx context.Context, org *domain.Organization) error
	Delete(ctx context.Context, id string) error
}

type BankAccountRepository interface {
	Insert(ctx context.Context, acc *domain.BankAccount) (*domain.BankAccount, error)
	FindByID(ctx context.Context, id string, owner domain.OwnerID) (*domain.BankAccount, error)
	List(ctx context.Context, owner domain.OwnerID, q ListQuery) ([]*domain.BankAccount, int64, error)
	Update(ctx context.Context, acc *domain.BankAccount) error
	Delete(ctx context.Context, id string) error
}

type BudgetRepository interface {
	Insert(ctx context.Context, b *domain.Budget) (*domain.Budget, error)
	FindByID(ctx context.Context, id string, owner domain.OwnerID) (*domain.Budget, error)
	List(ctx context.Context, owner domain.OwnerID, q ListQuery) ([]*domain.Budget, int64, error)
	Update(ctx context.Context, b *domain.Budget) error
	Delete(ctx context.Context, id string) error
}

type ExpenseRepository interface {
	Insert(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	FindByID(ctx context.Context, id string, owner domain.OwnerID) (*domain.Expense, error)
	List(ctx context.Context, owner domain.OwnerID, q ListQuery, r DateRange) ([]*domain.Expense, int64, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id string) error
}

type IncomeRepository interface {
	Insert(ctx context.Context, i *domain.Income) (*domain.Income, error)
	FindByID(ctx context.Context, id string, owner domain.OwnerID) (*domain.Income, error)
	List(ctx context.Context, owner domain.OwnerID, q ListQuery, r DateRange) ([]*domain.Income, int64, error)
	Update(ctx context.Context, i *domain.Income) error
	Delete(ctx context.Context, id string) error
}

type TransactionRepository interface {
	Insert(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, id string, owner domain.OwnerID) (*domain.Transaction, error)
	List(ctx context.Context, owner domain.OwnerID, q ListQuery, r DateRange) ([]*domain.Transaction, int64, error)
	Update(ctx context.Context, t *domain.Transaction) error
	Delete(ctx context.Context, id string) error
}

// ReportRepository runs owner-scoped aggregation pipelines.
type ReportRepository interface {
	MonthlyExpenseTotals(ctx context.Context, owner domain.OwnerID, year int) (map[time.Month]decimal.Decimal, error)
	MonthlyIncomeTotals(ctx context.Context, owner domain.OwnerID, year int) (map[time.Month]decimal.Decimal, error)
	ExpensesByCategory(ctx context.Context, owner domain.OwnerID, year int, month time.Month) ([]domain.CategoryTotal, error)
	// ExpenseCount and IncomeCount count an owner's records inside a date
	// range, backing the dashboard's recent-activity figures.
	ExpenseCount(ctx context.Context, owner domain.OwnerID, r DateRange) (int64, error)
	IncomeCount(ctx context.Context, owner domain.OwnerID, r DateRange) (int64, error)
}
