// Package service defines domain-level contracts implemented by the
// infrastructure layer.
package service

import (
	"context"
	"strings"
)

// Cached operation names. They mirror the query keys the views use, so one
// mutation can invalidate every listing derived from the affected collection.
const (
	OpPatients   = "patients"   // patient listings, parameterized by search substring
	OpPatient    = "patient"    // single patient record, parameterized by id
	OpUserRoles  = "userRoles"  // resolved role set, parameterized by user id
	OpAdminUsers = "adminUsers" // staff accounts joined with role assignments
	OpStats      = "stats"      // dashboard summary
)

// CacheKey identifies one cached result set: an operation name plus its
// serialized parameters.
type CacheKey struct {
	Operation string
	Params    string
}

// NewCacheKey builds a key from an operation name and its parameters.
func NewCacheKey(operation string, params ...string) CacheKey {
	return CacheKey{Operation: operation, Params: strings.Join(params, "/")}
}

// String renders the key in "operation/params" form.
func (k CacheKey) String() string {
	if k.Params == "" {
		return k.Operation
	}

	return k.Operation + "/" + k.Params
}

// KeyPredicate selects cache keys for invalidation.
type KeyPredicate func(CacheKey) bool

// ForOperation matches every key of one operation regardless of parameters.
func ForOperation(operation string) KeyPredicate {
	return func(k CacheKey) bool {
		return k.Operation == operation
	}
}

// ForKey matches exactly one key.
func ForKey(key CacheKey) KeyPredicate {
	return func(k CacheKey) bool {
		return k == key
	}
}

// AnyOf combines predicates with OR.
func AnyOf(predicates ...KeyPredicate) KeyPredicate {
	return func(k CacheKey) bool {
		for _, p := range predicates {
			if p(k) {
				return true
			}
		}

		return false
	}
}

// Fetcher produces a fresh result for a cache key. The cache invokes it on a
// context detached from the requesting caller, so a consumer that goes away
// mid-fetch does not abort the fetch for everyone sharing it.
type Fetcher func(ctx context.Context) (any, error)

// QueryCache is the read-through mirror in front of the record store. Cached
// entries never expire on their own; staleness is driven solely by explicit
// invalidation after a mutation.
type QueryCache interface {
	// GetOrFetch returns the cached value for key, or invokes fetch, stores
	// the result and returns it. Concurrent calls for the same key share a
	// single outstanding fetch. Failed fetches are not cached.
	GetOrFetch(ctx context.Context, key CacheKey, fetch Fetcher) (any, error)

	// Invalidate marks every matching key stale. The next GetOrFetch for a
	// stale key re-fetches unconditionally, including keys whose fetch was in
	// flight when the invalidation happened.
	Invalidate(match KeyPredicate)

	// Subscribe registers an observer notified once per invalidated key.
	// The returned function cancels the subscription.
	Subscribe(fn func(CacheKey)) (cancel func())
}

// Fetch is a typed convenience wrapper around QueryCache.GetOrFetch.
func Fetch[T any](ctx context.Context, cache QueryCache, key CacheKey, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := cache.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T

		return zero, err
	}

	result, ok := v.(T)
	if !ok {
		var zero T

		return zero, nil
	}

	return result, nil
}
