package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogKind distinguishes the four lookup-style resources that share one
// shape: a named item with an optional description.
type CatalogKind string

const (
	KindTag             CatalogKind = "tag"
	KindPaymentMethod   CatalogKind = "payment_method"
	KindExpenseCategory CatalogKind = "expense_category"
	KindIncomeSource    CatalogKind = "income_source"
)

// CatalogItem is a user-scoped lookup entry (tag, payment method, expense
// category or income source).
type CatalogItem struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	Kind        CatalogKind `json:"kind" bson:"kind"`
	Name        string      `json:"name" bson:"name"`
	Description string      `json:"description,omitempty" bson:"description,omitempty"`
	Owner       OwnerID     `json:"owner" bson:"owner"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}

func (c *CatalogItem) OwnedBy() OwnerID { return c.Owner }

// Organization groups a user's finances (e.g. personal vs. business books).
type Organization struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Currency    string    `json:"currency" bson:"currency"`
	Owner       OwnerID   `json:"owner" bson:"owner"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (o *Organization) OwnedBy() OwnerID { return o.Owner }

// BankAccount is a user's account at a financial institution.
type BankAccount struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	BankName       string          `json:"bank_name"`
	AccountNumber  string          `json:"account_number"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Owner          OwnerID         `json:"owner"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (b *BankAccount) OwnedBy() OwnerID { return b.Owner }

// BudgetPeriod is the recurrence of a budget.
type BudgetPeriod string

const (
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Budget caps spending for an expense category over a period.
type Budget struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
	CategoryID string          `json:"category_id,omitempty"`
	Owner      OwnerID         `json:"owner"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (b *Budget) OwnedBy() OwnerID { return b.Owner }

// Expense is money spent, dated and classified.
type Expense struct {
	ID              string          `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	CategoryID      string          `json:"category_id,omitempty"`
	PaymentMethodID string          `json:"payment_method_id,omitempty"`
	TagIDs          []string        `json:"tag_ids,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Owner           OwnerID         `json:"owner"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (e *Expense) OwnedBy() OwnerID { return e.Owner }

// Income is money received, dated and attributed to a source.
type Income struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	SourceID      string          `json:"source_id,omitempty"`
	BankAccountID string          `json:"bank_account_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Owner         OwnerID         `json:"owner"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (i *Income) OwnedBy() OwnerID { return i.Owner }

// TransactionType is the direction of a bank transaction.
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction is a raw movement on a bank account.
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	BankAccountID string          `json:"bank_account_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Owner         OwnerID         `json:"owner"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (t *Transaction) OwnedBy() OwnerID { return t.Owner }

// MonthlySummary is one row of the income-vs-expense report.
type MonthlySummary struct {
	Year     int             `json:"year"`
	Month    time.Month      `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// CategoryTotal is one row of the expenses-by-category report.
type CategoryTotal struct {
	CategoryID string          `json:"category_id"`
	Total      decimal.Decimal `json:"total"`
	Count      int64           `json:"count"`
}
