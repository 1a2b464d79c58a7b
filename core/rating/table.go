// Package rating provides the rate table and rate resolution.
// The table is built once at startup from a RateSource and is read-only
// thereafter, so lookups need no locking.
package rating

import (
	"quote-engine/core/types"
)

// RateSource supplies the active rate entries at startup
type RateSource interface {
	// ActiveRates returns the rate entries to load, in source order
	ActiveRates() ([]types.RateEntry, error)
}

// Table is the immutable rate lookup table
type Table struct {
	entries map[types.RateKey]types.RateEntry
}

// BuildTable constructs the table from a source. Inactive entries are
// dropped; for duplicate keys the first entry wins, matching the
// first-match semantics of resolution.
func BuildTable(source RateSource) (*Table, error) {
	rates, err := source.ActiveRates()
	if err != nil {
		return nil, err
	}

	entries := make(map[types.RateKey]types.RateEntry, len(rates))
	for _, entry := range rates {
		if !entry.Active {
			continue
		}
		key := entry.Key()
		if _, exists := entries[key]; exists {
			continue
		}
		entries[key] = entry
	}

	return &Table{entries: entries}, nil
}

// NewTable constructs a table directly from entries (tests, fixtures)
func NewTable(rates []types.RateEntry) *Table {
	table, _ := BuildTable(staticSource(rates))
	return table
}

type staticSource []types.RateEntry

func (s staticSource) ActiveRates() ([]types.RateEntry, error) {
	return s, nil
}

// Len returns the number of loaded entries
func (t *Table) Len() int {
	return len(t.entries)
}

// lookup returns the entry for an exact key
func (t *Table) lookup(key types.RateKey) (types.RateEntry, bool) {
	entry, ok := t.entries[key]
	return entry, ok
}
