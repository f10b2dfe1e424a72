package mongo

import (
	"context"
	"errors"
	"testing"
)

// Startup index creation covers every repository with its own indexes; a
// repository missing the method breaks this assertion at compile time.
var _ = []indexEnsurer{
	(*AccountRepository)(nil),
	(*CatalogRepository)(nil),
	(*OrganizationRepository)(nil),
	(*BankAccountRepository)(nil),
	(*BudgetRepository)(nil),
	(*ExpenseRepository)(nil),
	(*IncomeRepository)(nil),
}

type fakeEnsurer struct {
	calls int
	err   error
}

func (f *fakeEnsurer) EnsureIndexes(context.Context) error {
	f.calls++
	return f.err
}

func TestEnsureIndexes_RunsAll(t *testing.T) {
	a, b := &fakeEnsurer{}, &fakeEnsurer{}

	if err := EnsureIndexes(context.Background(), a, b); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected one call each, got %d and %d", a.calls, b.calls)
	}
}

func TestEnsureIndexes_StopsOnFirstError(t *testing.T) {
	boom := errors.New("index build failed")
	failing := &fakeEnsurer{err: boom}
	after := &fakeEnsurer{}

	err := EnsureIndexes(context.Background(), failing, after)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped index error, got %v", err)
	}
	if after.calls != 0 {
		t.Fatalf("creation must stop at the first failure")
	}
}
