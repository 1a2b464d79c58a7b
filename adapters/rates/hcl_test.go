package rates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"quote-engine/core/types"
)

const sampleRates = `
rate "workers_comp" "CA" "8810" {
  base_rate       = 2.5
  minimum_premium = 500.00
  tax_rate        = 0.0328
  effective_date  = "2026-01-01"
}

rate "general_liability" "DEFAULT" "DEFAULT" {
  base_rate       = 5.5
  minimum_premium = 500.00
  tax_rate        = 0.0300
  active          = false
}
`

func writeRateFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write rate file: %v", err)
	}
	return dir
}

func TestLoadRateDirectory(t *testing.T) {
	dir := writeRateFile(t, "base.hcl", sampleRates)

	entries, err := NewLoader(dir).ActiveRates()
	if err != nil {
		t.Fatalf("ActiveRates: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	wc := entries[0]
	if wc.Product != types.ProductWorkersComp || wc.State != "CA" || wc.Classification != "8810" {
		t.Errorf("unexpected labels: %+v", wc)
	}
	if !wc.BaseRate.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("expected base rate 2.5, got %s", wc.BaseRate)
	}
	if !wc.TaxRate.Equal(decimal.RequireFromString("0.0328")) {
		t.Errorf("expected tax rate 0.0328, got %s", wc.TaxRate)
	}
	if !wc.Active {
		t.Error("active must default to true")
	}
	if wc.EffectiveDate.IsZero() {
		t.Error("effective date not parsed")
	}

	if entries[1].Active {
		t.Error("explicit active = false not honored")
	}
}

func TestMissingBaseRateRejected(t *testing.T) {
	dir := writeRateFile(t, "bad.hcl", `
rate "cyber" "NY" "DEFAULT" {
  minimum_premium = 750.00
  tax_rate        = 0.0200
}
`)

	if _, err := NewLoader(dir).ActiveRates(); err == nil {
		t.Fatal("expected error for rate block without base_rate")
	}
}

func TestUnknownAttributeRejected(t *testing.T) {
	dir := writeRateFile(t, "bad.hcl", `
rate "cyber" "NY" "DEFAULT" {
  base_rate = 1.0
  surcharge = 0.5
}
`)

	if _, err := NewLoader(dir).ActiveRates(); err == nil {
		t.Fatal("expected error for unknown attribute")
	}
}

func TestEmptyDirectoryRejected(t *testing.T) {
	if _, err := NewLoader(t.TempDir()).ActiveRates(); err == nil {
		t.Fatal("expected error for directory without rate files")
	}
}

func TestMalformedHCLRejected(t *testing.T) {
	dir := writeRateFile(t, "broken.hcl", `rate "x" { base_rate = `)

	if _, err := NewLoader(dir).ActiveRates(); err == nil {
		t.Fatal("expected parse error for malformed file")
	}
}
