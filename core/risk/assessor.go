// Package risk provides multi-factor risk assessment.
// Assess is a pure function of the request; it holds no shared state and
// is safe to call concurrently.
package risk

import (
	"math"

	"github.com/shopspring/decimal"

	"quote-engine/core/types"
)

// Tier thresholds over the 0-100 weighted score
const (
	tierPreferredMax   = 35
	tierStandardMax    = 55
	tierNonStandardMax = 75
)

// Assess computes the weighted risk assessment for a request.
// Five factors are scored independently on a 0-100 scale and combined as
// a weighted average rounded to the nearest integer.
func Assess(req *types.QuoteRequest) types.RiskAssessment {
	factors := []types.RiskFactorScore{
		scoreTenure(req.YearsInBusiness),
		scoreHeadcount(req.EmployeeCount, req.BusinessType),
		scoreIndustry(req.BusinessType),
		scoreClaims(req),
		scoreRevenue(req.AnnualRevenue),
	}

	weightedSum := 0
	totalWeight := 0
	for _, f := range factors {
		weightedSum += f.Score * f.Weight
		totalWeight += f.Weight
	}

	score := int(math.Round(float64(weightedSum) / float64(totalWeight)))

	return types.RiskAssessment{
		Score:   score,
		Tier:    tierFor(score),
		Factors: factors,
		Notes:   notes(req, score, tierFor(score)),
	}
}

// tierFor maps the overall score to a risk tier
func tierFor(score int) types.RiskTier {
	switch {
	case score <= tierPreferredMax:
		return types.TierPreferred
	case score <= tierStandardMax:
		return types.TierStandard
	case score <= tierNonStandardMax:
		return types.TierNonStandard
	default:
		return types.TierDecline
	}
}

// notes generates advisory underwriting notes. They never affect the
// score or the tier.
func notes(req *types.QuoteRequest, score int, tier types.RiskTier) []string {
	var out []string

	switch tier {
	case types.TierPreferred:
		out = append(out, "preferred risk profile; eligible for best available rates")
	case types.TierNonStandard:
		out = append(out, "elevated risk profile; consider underwriter review before binding")
	case types.TierDecline:
		out = append(out, "risk score exceeds acceptable threshold")
	}

	if req.YearsInBusiness < 3 {
		out = append(out, "limited operating history; financial stability unverified")
	}

	if industryScores[req.BusinessType] >= 60 {
		out = append(out, "high-hazard industry classification")
	}

	if req.AnnualPayroll.GreaterThan(decimal.NewFromInt(5_000_000)) {
		out = append(out, "large payroll exposure; verify payroll audit requirements")
	}

	return out
}
