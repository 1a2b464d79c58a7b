// Package risk - Individual factor scorers
package risk

import (
	"github.com/shopspring/decimal"

	"quote-engine/core/types"
)

// Factor weights. The weighted average is taken over their sum.
const (
	weightTenure    = 20
	weightHeadcount = 15
	weightIndustry  = 25
	weightClaims    = 25
	weightRevenue   = 15
)

// industryScores maps each business type to a fixed 20-80 score.
// Missing types fall back to 50 (neutral).
var industryScores = map[types.BusinessType]int{
	types.BusinessOffice:               20,
	types.BusinessProfessionalServices: 25,
	types.BusinessTechnology:           30,
	types.BusinessRealEstate:           35,
	types.BusinessRetail:               40,
	types.BusinessHealthcare:           45,
	types.BusinessWholesale:            50,
	types.BusinessOther:                50,
	types.BusinessRestaurant:           60,
	types.BusinessManufacturing:        65,
	types.BusinessConstruction:         75,
	types.BusinessTransportation:       80,
}

// scoreTenure scores years in business. Risk decreases monotonically
// with tenure.
func scoreTenure(years int) types.RiskFactorScore {
	var score int
	switch {
	case years >= 10:
		score = 15
	case years >= 5:
		score = 25
	case years >= 3:
		score = 40
	case years >= 2:
		score = 55
	case years == 1:
		score = 70
	default:
		score = 90
	}

	return types.RiskFactorScore{
		Name:   "years_in_business",
		Score:  score,
		Weight: weightTenure,
		Impact: types.ImpactOf(score),
	}
}

// scoreHeadcount scores employee count, banded by headcount with a flat
// penalty for the labor-intensive hazardous segments.
func scoreHeadcount(employees int, business types.BusinessType) types.RiskFactorScore {
	var score int
	switch {
	case employees <= 5:
		score = 20
	case employees <= 20:
		score = 30
	case employees <= 50:
		score = 40
	case employees <= 100:
		score = 50
	case employees <= 250:
		score = 60
	case employees <= 500:
		score = 70
	default:
		score = 80
	}

	if business == types.BusinessConstruction || business == types.BusinessManufacturing {
		score += 15
		if score > 100 {
			score = 100
		}
	}

	return types.RiskFactorScore{
		Name:   "employee_count",
		Score:  score,
		Weight: weightHeadcount,
		Impact: types.ImpactOf(score),
	}
}

// scoreIndustry scores the business type from the fixed lookup table
func scoreIndustry(business types.BusinessType) types.RiskFactorScore {
	score, ok := industryScores[business]
	if !ok {
		score = 50
	}

	return types.RiskFactorScore{
		Name:   "industry",
		Score:  score,
		Weight: weightIndustry,
		Impact: types.ImpactOf(score),
	}
}

// scoreClaims scores claims history from the caller-supplied claims
// factor, clamped to 0-100. Absent factor defaults to 40 (neutral).
func scoreClaims(req *types.QuoteRequest) types.RiskFactorScore {
	score := 40
	if factor, ok := req.Factor(types.FactorClaims); ok {
		value := factor.Value
		if value.LessThan(decimal.Zero) {
			value = decimal.Zero
		}
		if value.GreaterThan(decimal.NewFromInt(100)) {
			value = decimal.NewFromInt(100)
		}
		score = int(value.Round(0).IntPart())
	}

	return types.RiskFactorScore{
		Name:   "claims_history",
		Score:  score,
		Weight: weightClaims,
		Impact: types.ImpactOf(score),
	}
}

// scoreRevenue scores annual revenue, banded by size
func scoreRevenue(revenue decimal.Decimal) types.RiskFactorScore {
	band := func(limit int64) bool {
		return revenue.LessThan(decimal.NewFromInt(limit))
	}

	var score int
	switch {
	case band(100_000):
		score = 30
	case band(500_000):
		score = 35
	case band(1_000_000):
		score = 40
	case band(5_000_000):
		score = 50
	case band(10_000_000):
		score = 60
	case band(25_000_000):
		score = 70
	default:
		score = 80
	}

	return types.RiskFactorScore{
		Name:   "revenue_size",
		Score:  score,
		Weight: weightRevenue,
		Impact: types.ImpactOf(score),
	}
}
