// Package rating - Tiered rate resolution
package rating

import (
	"quote-engine/core/types"
	"quote-engine/internal/errors"
)

// Resolver resolves the single applicable rate entry for a lookup.
// Most classification codes are state-invariant for a product while a
// handful of states carry surcharged base rates; tiered fallback lets
// sparse overrides coexist with broad defaults without duplicating every
// (state, classification) pair.
type Resolver struct {
	table *Table
}

// NewResolver creates a resolver over a built table
func NewResolver(table *Table) (*Resolver, error) {
	if table == nil {
		return nil, errors.Config("rate resolver requires a rate table")
	}
	return &Resolver{table: table}, nil
}

// Resolve returns the applicable rate entry using three-tier fallback:
// exact (state, classification, product), then (state, DEFAULT, product),
// then (DEFAULT, DEFAULT, product). First match wins; entries are never
// merged. A typed not-found error signals that no rate applies.
func (r *Resolver) Resolve(state, classification string, product types.ProductType) (types.RateEntry, error) {
	candidates := []types.RateKey{
		{State: state, Classification: classification, Product: product},
		{State: state, Classification: types.DefaultKey, Product: product},
		{State: types.DefaultKey, Classification: types.DefaultKey, Product: product},
	}

	for _, key := range candidates {
		if entry, ok := r.table.lookup(key); ok {
			return entry, nil
		}
	}

	return types.RateEntry{}, errors.NotFound("rate", candidates[0].String())
}
