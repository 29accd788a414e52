// Package store is the typed data-access facade: one operation per
// (collection, verb) pair of the access policy table. Every write validates
// and sanitizes caller input before the underlying store is touched; every
// read takes a bounded ordering specification and returns the full matching
// set.
package store

import (
	"errors"

	"github.com/pocketbase/pocketbase/core"

	"club-portal/security"
)

// allFilter matches every row; the underlying finder requires a non-empty
// filter expression.
const allFilter = "id != ''"

type Store struct {
	app   core.App
	admin *security.AdminChecker
}

func New(app core.App, admin *security.AdminChecker) *Store {
	return &Store{app: app, admin: admin}
}

// Ordering selects the result order of a list operation. The zero value
// means "use the collection default".
type Ordering struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// sortExpr resolves the ordering against a per-collection field allow-list.
// Unknown fields are a validation error, not a silent fallback.
func (o Ordering) sortExpr(allowed map[string]bool, fallback string) (string, error) {
	if o.Field == "" {
		return fallback, nil
	}
	if !allowed[o.Field] {
		return "", errors.New("unsupported order field: " + o.Field)
	}
	if o.Desc {
		return "-" + o.Field, nil
	}
	return o.Field, nil
}
