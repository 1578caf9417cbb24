// Package store defines the contract of the remote record store consumed by
// the repositories. The store itself is an external collaborator; the core
// only depends on this interface and treats any non-nil error as a failed
// exchange whose data must be ignored.
package store

import (
	"context"
	"time"

	"afya/internal/errors"

	"github.com/google/uuid"
)

// Collection names exposed by the record store.
const (
	CollectionPatients  = "patients"
	CollectionProfiles  = "profiles"
	CollectionUserRoles = "user_roles"
)

// ErrNoRows is returned by mutations whose target id no longer exists.
var ErrNoRows = errors.New("store: no matching rows")

// ErrConflict is returned by Insert when the row collides with an existing
// unique key.
var ErrConflict = errors.New("store: conflicting row exists")

// Op is a filter comparison operator.
type Op string

const (
	// OpEq matches a column exactly.
	OpEq Op = "eq"
	// OpContainsFold matches a column containing a substring, case-insensitively.
	OpContainsFold Op = "icontains"
)

// Cond is a single column comparison.
type Cond struct {
	Column string
	Op     Op
	Value  any
}

// Filter narrows a Select. All conditions are ANDed together; the Any group,
// when present, is a single ORed disjunction ANDed with the rest.
type Filter struct {
	All []Cond
	Any []Cond
}

// Order sorts a Select result by one column.
type Order struct {
	Column     string
	Descending bool
}

// Query combines filtering and ordering for a Select.
type Query struct {
	Filter Filter
	Order  *Order
}

// Row is one record of a collection keyed by column name.
type Row map[string]any

// String reads a column as a string, tolerating absent or nil values.
func (r Row) String(column string) string {
	if v, ok := r[column].(string); ok {
		return v
	}

	return ""
}

// UUID reads a column as a uuid, accepting either uuid.UUID or string values.
func (r Row) UUID(column string) uuid.UUID {
	switch v := r[column].(type) {
	case uuid.UUID:
		return v
	case string:
		id, err := uuid.Parse(v)
		if err == nil {
			return id
		}
	}

	return uuid.Nil
}

// Time reads a column as a timestamp, accepting time.Time or RFC 3339 strings.
func (r Row) Time(column string) time.Time {
	switch v := r[column].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err == nil {
			return t
		}
	}

	return time.Time{}
}

// Client executes filtered reads and row mutations against named collections.
//
// Errors other than ErrNoRows indicate the store was unreachable or rejected
// the operation; callers surface those as transport failures and never act on
// the accompanying data.
type Client interface {
	// Select returns the rows of collection matching query, in query order.
	Select(ctx context.Context, collection string, query Query) ([]Row, error)

	// Insert adds one row and returns it with store-assigned columns filled in.
	Insert(ctx context.Context, collection string, row Row) (Row, error)

	// Update patches the row with the given id and returns the stored result.
	// Returns ErrNoRows if the id does not exist.
	Update(ctx context.Context, collection string, id uuid.UUID, patch Row) (Row, error)

	// Delete removes rows matching the filter. Returns ErrNoRows when nothing
	// matched and atLeastOne is set.
	Delete(ctx context.Context, collection string, filter Filter, atLeastOne bool) error
}
