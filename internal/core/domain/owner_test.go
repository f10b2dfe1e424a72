package domain

import (
	"errors"
	"testing"
)

type ownedRecord struct {
	owner OwnerID
}

func (r ownedRecord) OwnedBy() OwnerID { return r.owner }

func TestOwnerID_Equals(t *testing.T) {
	if !OwnerID("acc_1").Equals("acc_1") {
		t.Fatalf("identical ids should be equal")
	}
	if OwnerID("acc_1").Equals("acc_2") {
		t.Fatalf("different ids should not be equal")
	}
	// Whitespace variants refer to the same account.
	if !OwnerID(" acc_1 ").Equals("acc_1") {
		t.Fatalf("whitespace should not break equality")
	}
	// A zero owner equals nothing, not even another zero owner.
	if OwnerID("").Equals("") {
		t.Fatalf("two zero owners must not be equal")
	}
	if OwnerID("  ").Equals("") {
		t.Fatalf("blank owner must not equal zero owner")
	}
	if OwnerID("acc_1").Equals("") || OwnerID("").Equals("acc_1") {
		t.Fatalf("zero owner must not equal a real owner")
	}
}

func TestAuthorize(t *testing.T) {
	record := ownedRecord{owner: "acc_1"}

	if err := Authorize(record, "acc_1"); err != nil {
		t.Fatalf("owner should be authorized: %v", err)
	}
	if err := Authorize(record, "acc_2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := Authorize(record, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for anonymous caller, got %v", err)
	}
}

func TestAuthorize_OwnerlessRecord(t *testing.T) {
	orphan := ownedRecord{}

	// No caller can mutate a record that has no owner.
	if err := Authorize(orphan, "acc_1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := Authorize(orphan, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
