// Package memory provides an in-memory store.Client used by tests and local
// development. It mirrors the observable behavior of the PostgreSQL client:
// filter semantics, ordering, conflict detection and ErrNoRows reporting.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"afya/internal/domain/store"

	"github.com/google/uuid"
)

// Store is an in-memory record store.
type Store struct {
	mu          sync.Mutex
	collections map[string][]store.Row
	forcedErr   error
	now         func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string][]store.Row),
		now:         time.Now,
	}
}

// Seed appends rows to a collection without store-assigned columns.
func (s *Store) Seed(collection string, rows ...store.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		s.collections[collection] = append(s.collections[collection], cloneRow(row))
	}
}

// Fail makes every following operation return err until called with nil.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forcedErr = err
}

// SetNow overrides the clock used for store-assigned timestamps.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
}

// Select returns the rows of collection matching query, in query order.
func (s *Store) Select(_ context.Context, collection string, query store.Query) ([]store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.forcedErr != nil {
		return nil, s.forcedErr
	}

	var matched []store.Row
	for _, row := range s.collections[collection] {
		if matchesFilter(row, query.Filter) {
			matched = append(matched, cloneRow(row))
		}
	}

	if query.Order != nil {
		sortRows(matched, *query.Order)
	}

	return matched, nil
}

// Insert adds one row and returns it with store-assigned columns filled in.
func (s *Store) Insert(_ context.Context, collection string, row store.Row) (store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.forcedErr != nil {
		return nil, s.forcedErr
	}

	stored := cloneRow(row)
	switch collection {
	case store.CollectionPatients:
		if stored.UUID("id") == uuid.Nil {
			stored["id"] = uuid.New()
		}
		stored["created_at"] = s.now()
	case store.CollectionUserRoles:
		for _, existing := range s.collections[collection] {
			if existing.UUID("user_id") == stored.UUID("user_id") && existing.String("role") == stored.String("role") {
				return nil, store.ErrConflict
			}
		}
	}

	s.collections[collection] = append(s.collections[collection], stored)

	return cloneRow(stored), nil
}

// Update patches the row with the given id and returns the stored result.
func (s *Store) Update(_ context.Context, collection string, id uuid.UUID, patch store.Row) (store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.forcedErr != nil {
		return nil, s.forcedErr
	}

	for _, row := range s.collections[collection] {
		if row.UUID("id") != id {
			continue
		}
		for column, value := range patch {
			row[column] = value
		}

		return cloneRow(row), nil
	}

	return nil, store.ErrNoRows
}

// Delete removes rows matching the filter.
func (s *Store) Delete(_ context.Context, collection string, filter store.Filter, atLeastOne bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.forcedErr != nil {
		return s.forcedErr
	}

	kept := s.collections[collection][:0]
	removed := 0
	for _, row := range s.collections[collection] {
		if matchesFilter(row, filter) {
			removed++

			continue
		}
		kept = append(kept, row)
	}
	s.collections[collection] = kept

	if removed == 0 && atLeastOne {
		return store.ErrNoRows
	}

	return nil
}

// Rows returns a snapshot of a collection, for test assertions.
func (s *Store) Rows(collection string) []store.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]store.Row, 0, len(s.collections[collection]))
	for _, row := range s.collections[collection] {
		rows = append(rows, cloneRow(row))
	}

	return rows
}

func matchesFilter(row store.Row, filter store.Filter) bool {
	for _, cond := range filter.All {
		if !matchesCond(row, cond) {
			return false
		}
	}

	if len(filter.Any) == 0 {
		return true
	}
	for _, cond := range filter.Any {
		if matchesCond(row, cond) {
			return true
		}
	}

	return false
}

func matchesCond(row store.Row, cond store.Cond) bool {
	switch cond.Op {
	case store.OpContainsFold:
		haystack := strings.ToLower(row.String(cond.Column))
		needle := strings.ToLower(fmt.Sprint(cond.Value))

		return strings.Contains(haystack, needle)
	case store.OpEq:
		return fmt.Sprint(row[cond.Column]) == fmt.Sprint(cond.Value)
	default:
		return false
	}
}

func sortRows(rows []store.Row, order store.Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		if order.Descending {
			return lessByColumn(rows[j], rows[i], order.Column)
		}

		return lessByColumn(rows[i], rows[j], order.Column)
	})
}

func lessByColumn(a, b store.Row, column string) bool {
	at, bt := a.Time(column), b.Time(column)
	if !at.IsZero() || !bt.IsZero() {
		return at.Before(bt)
	}

	return fmt.Sprint(a[column]) < fmt.Sprint(b[column])
}

func cloneRow(row store.Row) store.Row {
	cloned := make(store.Row, len(row))
	for column, value := range row {
		cloned[column] = value
	}

	return cloned
}

var _ store.Client = (*Store)(nil)
