package domain

import (
	"errors"
	"strings"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrDuplicateName    = errors.New("name already in use")
	ErrUnauthorized     = errors.New("authentication required")
	ErrForbidden        = errors.New("access forbidden")
)

// OwnerID is the normalized identifier of the account that owns a resource.
// All ownership comparisons go through Equals so equality is defined in
// exactly one place.
type OwnerID string

func (o OwnerID) String() string { return string(o) }

// IsZero reports whether the owner is absent.
func (o OwnerID) IsZero() bool { return strings.TrimSpace(string(o)) == "" }

// Equals reports whether two owner identifiers refer to the same account.
// A zero owner never equals anything, including another zero owner: records
// without an owner are not writable by anyone.
func (o OwnerID) Equals(other OwnerID) bool {
	if o.IsZero() || other.IsZero() {
		return false
	}
	return strings.TrimSpace(string(o)) == strings.TrimSpace(string(other))
}

// Owned is implemented by every resource whose mutation is restricted to the
// account that created it.
type Owned interface {
	OwnedBy() OwnerID
}

// Authorize is the single ownership check: nil when caller may mutate r.
func Authorize(r Owned, caller OwnerID) error {
	if caller.IsZero() {
		return ErrUnauthorized
	}
	if !r.OwnedBy().Equals(caller) {
		return ErrForbidden
	}
	return nil
}
