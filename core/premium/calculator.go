// Package premium provides itemized premium calculation.
// Calculate is a pure function of its inputs. All monetary arithmetic is
// decimal and rounded to 2 places after every step; the tie-break is
// round-half-away-from-zero throughout.
package premium

import (
	"github.com/shopspring/decimal"

	"quote-engine/core/types"
)

// Adjustment codes, in application order
const (
	CodeTier           = "TIER"
	CodeExperienceMod  = "EXP_MOD"
	CodeLoyalty        = "LOYALTY"
	CodeSafety         = "SAFETY"
	CodeMinimumPremium = "MIN_PREMIUM"
	CodeDeductible     = "DEDUCTIBLE"
)

var (
	tierPreferredFactor   = decimal.RequireFromString("-0.15")
	tierNonStandardFactor = decimal.RequireFromString("0.25")
	loyaltyFactor         = decimal.RequireFromString("-0.05")
	safetyFactor          = decimal.RequireFromString("-0.10")
)

// Calculate produces the full premium breakdown.
//
// The adjustment order is fixed: tier, experience mod, loyalty, safety,
// minimum-premium top-up, deductible credit. The floor must see the
// post-discount subtotal and the deductible credit must be computed
// against the post-floor subtotal; reordering changes the final premium.
func Calculate(req *types.QuoteRequest, assessment types.RiskAssessment, rate types.RateEntry) types.PremiumBreakdown {
	base := basePremium(req, rate)

	var adjustments []types.PremiumAdjustment

	if adj, ok := tierAdjustment(base, assessment.Tier); ok {
		adjustments = append(adjustments, adj)
	}
	if adj, ok := experienceAdjustment(base, req, assessment); ok {
		adjustments = append(adjustments, adj)
	}
	if req.YearsInBusiness >= 5 {
		adjustments = append(adjustments, types.PremiumAdjustment{
			Code:        CodeLoyalty,
			Description: "loyalty discount for 5+ years in business",
			Type:        types.AdjustmentDiscount,
			Factor:      loyaltyFactor,
			Amount:      base.Mul(loyaltyFactor).Round(2),
		})
	}
	if safety, ok := req.Factor(types.FactorSafety); ok && safety.Value.GreaterThanOrEqual(decimal.NewFromInt(80)) {
		adjustments = append(adjustments, types.PremiumAdjustment{
			Code:        CodeSafety,
			Description: "safety program credit",
			Type:        types.AdjustmentCredit,
			Factor:      safetyFactor,
			Amount:      base.Mul(safetyFactor).Round(2),
		})
	}

	subtotal := base
	for _, adj := range adjustments {
		subtotal = subtotal.Add(adj.Amount)
	}
	subtotal = subtotal.Round(2)

	// Minimum-premium floor, applied after all discounts
	minimum := rate.MinimumPremium.Round(2)
	if subtotal.LessThan(minimum) {
		shortfall := minimum.Sub(subtotal)
		adjustments = append(adjustments, types.PremiumAdjustment{
			Code:        CodeMinimumPremium,
			Description: "adjustment to minimum premium",
			Type:        types.AdjustmentSurcharge,
			Amount:      shortfall,
		})
		subtotal = minimum
	}

	// Deductible credit, computed against the post-floor subtotal
	if creditRate := deductibleCreditRate(req.Deductible); creditRate.IsPositive() {
		credit := subtotal.Mul(creditRate).Round(2)
		adjustments = append(adjustments, types.PremiumAdjustment{
			Code:        CodeDeductible,
			Description: "deductible credit",
			Type:        types.AdjustmentCredit,
			Factor:      creditRate.Neg(),
			Amount:      credit.Neg(),
		})
		subtotal = subtotal.Sub(credit).Round(2)
	}

	totalAdjustments := decimal.Zero
	for _, adj := range adjustments {
		totalAdjustments = totalAdjustments.Add(adj.Amount)
	}
	totalAdjustments = totalAdjustments.Round(2)

	tax := subtotal.Mul(rate.TaxRate).Round(2)
	fee := policyFee(req.Product)
	annual := subtotal.Add(tax).Add(fee).Round(2)
	monthly := annual.Div(decimal.NewFromInt(12)).Round(2)

	return types.PremiumBreakdown{
		BasePremium:      base,
		Adjustments:      adjustments,
		TotalAdjustments: totalAdjustments,
		Subtotal:         subtotal,
		StateTax:         tax,
		PolicyFee:        fee,
		AnnualPremium:    annual,
		MonthlyPremium:   monthly,
		MinimumPremium:   minimum,
	}
}

// tierAdjustment returns the risk tier adjustment, if non-zero.
// Decline never reaches the calculator; the orchestrator declines first.
func tierAdjustment(base decimal.Decimal, tier types.RiskTier) (types.PremiumAdjustment, bool) {
	switch tier {
	case types.TierPreferred:
		return types.PremiumAdjustment{
			Code:        CodeTier,
			Description: "preferred tier discount",
			Type:        types.AdjustmentDiscount,
			Factor:      tierPreferredFactor,
			Amount:      base.Mul(tierPreferredFactor).Round(2),
		}, true
	case types.TierNonStandard:
		return types.PremiumAdjustment{
			Code:        CodeTier,
			Description: "non-standard tier surcharge",
			Type:        types.AdjustmentSurcharge,
			Factor:      tierNonStandardFactor,
			Amount:      base.Mul(tierNonStandardFactor).Round(2),
		}, true
	default:
		return types.PremiumAdjustment{}, false
	}
}

// experienceAdjustment returns the workers' comp experience modification,
// applied only with 3+ years of tenure and recorded only when the
// modifier is not exactly 1.00.
func experienceAdjustment(base decimal.Decimal, req *types.QuoteRequest, assessment types.RiskAssessment) (types.PremiumAdjustment, bool) {
	if req.Product != types.ProductWorkersComp || req.YearsInBusiness < 3 {
		return types.PremiumAdjustment{}, false
	}

	claimsScore := 40
	for _, f := range assessment.Factors {
		if f.Name == "claims_history" {
			claimsScore = f.Score
		}
	}

	modifier := experienceModifier(claimsScore)
	one := decimal.NewFromInt(1)
	if modifier.Equal(one) {
		return types.PremiumAdjustment{}, false
	}

	factor := modifier.Sub(one)
	adjType := types.AdjustmentDebit
	description := "experience modification debit"
	if modifier.LessThan(one) {
		adjType = types.AdjustmentCredit
		description = "experience modification credit"
	}

	return types.PremiumAdjustment{
		Code:        CodeExperienceMod,
		Description: description,
		Type:        adjType,
		Factor:      factor,
		Amount:      base.Mul(factor).Round(2),
	}, true
}
