// Package types - Rate table types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultKey is the wildcard used by fallback rate entries
const DefaultKey = "DEFAULT"

// RateEntry is a single row of the rate table.
// Entries are immutable once the table is built.
type RateEntry struct {
	// State is the two-letter state code, or DEFAULT
	State string `json:"state"`

	// Classification is the industry classification code, or DEFAULT
	Classification string `json:"classification"`

	// Product is the product line this rate applies to
	Product ProductType `json:"product"`

	// BaseRate is the base rate, 4 fractional digits
	BaseRate decimal.Decimal `json:"base_rate"`

	// MinimumPremium is the lowest premium this rate permits, 2 fractional digits
	MinimumPremium decimal.Decimal `json:"minimum_premium"`

	// TaxRate is the state premium tax rate, 4 fractional digits
	TaxRate decimal.Decimal `json:"tax_rate"`

	// Active marks the entry as usable for new quotes
	Active bool `json:"active"`

	// EffectiveDate is when the rate takes effect
	EffectiveDate time.Time `json:"effective_date"`

	// ExpirationDate is when the rate lapses (zero = open-ended)
	ExpirationDate time.Time `json:"expiration_date,omitempty"`
}

// Key returns the lookup key for this entry
func (e RateEntry) Key() RateKey {
	return RateKey{State: e.State, Classification: e.Classification, Product: e.Product}
}

// RateKey uniquely identifies a rate table entry
type RateKey struct {
	State          string
	Classification string
	Product        ProductType
}

// String returns a string representation for lookup and logging
func (k RateKey) String() string {
	return k.State + "/" + k.Classification + "/" + string(k.Product)
}
