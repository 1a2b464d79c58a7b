package rating

import (
	"testing"

	"github.com/shopspring/decimal"

	"quote-engine/core/types"
	"quote-engine/internal/errors"
)

func testEntry(state, class string, product types.ProductType, baseRate string) types.RateEntry {
	return types.RateEntry{
		State:          state,
		Classification: class,
		Product:        product,
		BaseRate:       decimal.RequireFromString(baseRate),
		MinimumPremium: decimal.RequireFromString("500.00"),
		TaxRate:        decimal.RequireFromString("0.0300"),
		Active:         true,
	}
}

func testTable(t *testing.T) *Table {
	t.Helper()
	return NewTable([]types.RateEntry{
		testEntry("CA", "8810", types.ProductWorkersComp, "2.5000"),
		testEntry("CA", "DEFAULT", types.ProductWorkersComp, "3.0000"),
		testEntry("DEFAULT", "DEFAULT", types.ProductWorkersComp, "3.5000"),
		testEntry("DEFAULT", "DEFAULT", types.ProductGeneralLiability, "5.5000"),
	})
}

func TestResolveExactMatchPreferred(t *testing.T) {
	resolver, err := NewResolver(testTable(t))
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	entry, err := resolver.Resolve("CA", "8810", types.ProductWorkersComp)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !entry.BaseRate.Equal(decimal.RequireFromString("2.5000")) {
		t.Errorf("expected exact entry rate 2.5000, got %s", entry.BaseRate)
	}
}

func TestResolveFallsBackToDefaultClassification(t *testing.T) {
	resolver, _ := NewResolver(testTable(t))

	entry, err := resolver.Resolve("CA", "9999", types.ProductWorkersComp)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if entry.Classification != types.DefaultKey || entry.State != "CA" {
		t.Errorf("expected CA/DEFAULT fallback, got %s/%s", entry.State, entry.Classification)
	}
}

func TestResolveFallsBackToDefaultState(t *testing.T) {
	resolver, _ := NewResolver(testTable(t))

	entry, err := resolver.Resolve("TX", "9999", types.ProductWorkersComp)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if entry.State != types.DefaultKey {
		t.Errorf("expected DEFAULT/DEFAULT fallback, got %s/%s", entry.State, entry.Classification)
	}
	if !entry.BaseRate.Equal(decimal.RequireFromString("3.5000")) {
		t.Errorf("expected rate 3.5000, got %s", entry.BaseRate)
	}
}

func TestResolveNotFound(t *testing.T) {
	resolver, _ := NewResolver(testTable(t))

	_, err := resolver.Resolve("TX", "9999", types.ProductCyber)
	if err == nil {
		t.Fatal("expected not-found error for product with no entries")
	}
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected NOT_FOUND error, got %v", err)
	}
}

func TestInactiveEntriesAreDropped(t *testing.T) {
	inactive := testEntry("CA", "8810", types.ProductWorkersComp, "2.5000")
	inactive.Active = false

	table := NewTable([]types.RateEntry{
		inactive,
		testEntry("DEFAULT", "DEFAULT", types.ProductWorkersComp, "3.5000"),
	})
	resolver, _ := NewResolver(table)

	entry, err := resolver.Resolve("CA", "8810", types.ProductWorkersComp)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if entry.State != types.DefaultKey {
		t.Errorf("inactive exact entry should be skipped, got %s/%s", entry.State, entry.Classification)
	}
}

func TestNewResolverRequiresTable(t *testing.T) {
	if _, err := NewResolver(nil); err == nil {
		t.Fatal("expected config error for nil table")
	}
}

func TestDuplicateKeysFirstWins(t *testing.T) {
	table := NewTable([]types.RateEntry{
		testEntry("CA", "8810", types.ProductWorkersComp, "2.0000"),
		testEntry("CA", "8810", types.ProductWorkersComp, "9.9000"),
	})
	resolver, _ := NewResolver(table)

	entry, err := resolver.Resolve("CA", "8810", types.ProductWorkersComp)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !entry.BaseRate.Equal(decimal.RequireFromString("2.0000")) {
		t.Errorf("expected first entry to win, got rate %s", entry.BaseRate)
	}
}
