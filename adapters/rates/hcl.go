// Package rates provides HCL rate file loading.
// Rate tables ship as .hcl files of rate blocks:
//
//	rate "general_liability" "CA" "91580" {
//	  base_rate       = 5.5000
//	  minimum_premium = 500.00
//	  tax_rate        = 0.0328
//	  active          = true
//	  effective_date  = "2026-01-01"
//	}
//
// The loader implements rating.RateSource; the table is built from it
// once at startup.
package rates

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"quote-engine/core/types"
	"quote-engine/internal/errors"
)

// Loader reads rate entries from a directory of HCL files
type Loader struct {
	dir    string
	parser *hclparse.Parser
}

// NewLoader creates a loader over a rate file directory
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:    dir,
		parser: hclparse.NewParser(),
	}
}

// ActiveRates parses every .hcl file in the directory, in lexical order,
// and returns the entries found. Parse failures abort the load; a rate
// table with silently missing rows is worse than no table.
func (l *Loader) ActiveRates() ([]types.RateEntry, error) {
	var files []string
	err := filepath.Walk(l.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".hcl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to walk rate directory %s", l.dir)
	}
	if len(files) == 0 {
		return nil, errors.Newf(errors.TypeConfig, "no rate files found in %s", l.dir)
	}

	var entries []types.RateEntry
	for _, file := range files {
		fileEntries, err := l.ParseFile(file)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}
	return entries, nil
}

// ParseFile parses a single rate file
func (l *Loader) ParseFile(path string) ([]types.RateEntry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to read rate file %s", path)
	}
	return l.Parse(src, path)
}

// Parse parses rate blocks from raw HCL source
func (l *Loader) Parse(src []byte, filename string) ([]types.RateEntry, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeConfig, diags, "failed to parse %s", filename)
	}

	content, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "rate", LabelNames: []string{"product", "state", "classification"}},
		},
	})
	if diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeConfig, diags, "invalid rate file %s", filename)
	}

	var entries []types.RateEntry
	for _, block := range content.Blocks {
		entry, err := decodeRateBlock(block)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeRateBlock(block *hcl.Block) (types.RateEntry, error) {
	entry := types.RateEntry{
		Product:        types.ProductType(block.Labels[0]),
		State:          block.Labels[1],
		Classification: block.Labels[2],
		Active:         true,
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return entry, errors.Wrapf(errors.TypeConfig, diags, "invalid rate block %s", blockAddr(block))
	}

	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return entry, errors.Wrapf(errors.TypeConfig, diags, "invalid attribute %s in %s", name, blockAddr(block))
		}

		switch name {
		case "base_rate":
			d, err := ctyDecimal(value)
			if err != nil {
				return entry, attrErr(block, name, err)
			}
			entry.BaseRate = d.Round(4)
		case "minimum_premium":
			d, err := ctyDecimal(value)
			if err != nil {
				return entry, attrErr(block, name, err)
			}
			entry.MinimumPremium = d.Round(2)
		case "tax_rate":
			d, err := ctyDecimal(value)
			if err != nil {
				return entry, attrErr(block, name, err)
			}
			entry.TaxRate = d.Round(4)
		case "active":
			if value.Type() != cty.Bool {
				return entry, attrErr(block, name, fmt.Errorf("expected bool"))
			}
			entry.Active = value.True()
		case "effective_date":
			t, err := ctyDate(value)
			if err != nil {
				return entry, attrErr(block, name, err)
			}
			entry.EffectiveDate = t
		case "expiration_date":
			t, err := ctyDate(value)
			if err != nil {
				return entry, attrErr(block, name, err)
			}
			entry.ExpirationDate = t
		default:
			return entry, errors.Newf(errors.TypeConfig, "unknown attribute %q in %s", name, blockAddr(block))
		}
	}

	if entry.BaseRate.IsZero() {
		return entry, errors.Newf(errors.TypeConfig, "rate block %s requires base_rate", blockAddr(block))
	}
	if entry.TaxRate.IsNegative() || entry.MinimumPremium.IsNegative() {
		return entry, errors.Newf(errors.TypeConfig, "rate block %s has negative amounts", blockAddr(block))
	}

	return entry, nil
}

func ctyDecimal(value cty.Value) (decimal.Decimal, error) {
	if value.Type() != cty.Number {
		return decimal.Zero, fmt.Errorf("expected number, got %s", value.Type().FriendlyName())
	}
	return decimal.NewFromString(value.AsBigFloat().Text('f', -1))
}

func ctyDate(value cty.Value) (time.Time, error) {
	if value.Type() != cty.String {
		return time.Time{}, fmt.Errorf("expected date string, got %s", value.Type().FriendlyName())
	}
	return time.Parse("2006-01-02", value.AsString())
}

func attrErr(block *hcl.Block, name string, err error) *errors.Error {
	return errors.Wrapf(errors.TypeConfig, err, "attribute %s in %s", name, blockAddr(block))
}

func blockAddr(block *hcl.Block) string {
	return fmt.Sprintf("rate %q %q %q", block.Labels[0], block.Labels[1], block.Labels[2])
}
