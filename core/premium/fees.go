// Package premium - Product formula and fee dispatch
package premium

import (
	"github.com/shopspring/decimal"

	"quote-engine/core/types"
)

// policyFees is the flat per-product policy fee schedule
var policyFees = map[types.ProductType]decimal.Decimal{
	types.ProductWorkersComp:           decimal.NewFromInt(250),
	types.ProductGeneralLiability:      decimal.NewFromInt(150),
	types.ProductBusinessOwners:        decimal.NewFromInt(175),
	types.ProductCommercialAuto:        decimal.NewFromInt(200),
	types.ProductProfessionalLiability: decimal.NewFromInt(175),
	types.ProductCyber:                 decimal.NewFromInt(125),
}

// fallbackPolicyFee is used for product types without a fee entry
var fallbackPolicyFee = decimal.NewFromInt(150)

// policyFee returns the flat policy fee for a product
func policyFee(product types.ProductType) decimal.Decimal {
	if fee, ok := policyFees[product]; ok {
		return fee
	}
	return fallbackPolicyFee
}

// basePremium computes the product-specific base premium. Product types
// without their own formula intentionally take the general liability
// path; callers may pass the catch-all on purpose.
func basePremium(req *types.QuoteRequest, rate types.RateEntry) decimal.Decimal {
	per100 := decimal.NewFromInt(100)
	per1000 := decimal.NewFromInt(1000)
	employees := decimal.NewFromInt(int64(req.EmployeeCount))

	var base decimal.Decimal
	switch req.Product {
	case types.ProductWorkersComp:
		// Rate per $100 of payroll
		base = req.AnnualPayroll.Div(per100).Mul(rate.BaseRate)
	case types.ProductBusinessOwners:
		base = req.AnnualRevenue.Div(per1000).Mul(rate.BaseRate).Mul(decimal.RequireFromString("1.25"))
	case types.ProductCommercialAuto:
		// Headcount stands in for fleet size
		base = employees.Mul(rate.BaseRate).Mul(decimal.RequireFromString("0.5"))
	case types.ProductProfessionalLiability:
		base = req.AnnualRevenue.Div(per1000).Mul(rate.BaseRate).Mul(decimal.RequireFromString("0.8"))
	case types.ProductCyber:
		base = req.AnnualRevenue.Div(per1000).Mul(rate.BaseRate).Mul(decimal.RequireFromString("0.3")).
			Add(employees.Mul(decimal.NewFromInt(50)))
	default:
		// Rate per $1000 of revenue
		base = req.AnnualRevenue.Div(per1000).Mul(rate.BaseRate)
	}

	return base.Round(2)
}

// experienceModifier maps the claims score to a workers' comp experience
// modifier. The step table spans 0.75-1.50; 1.00 is neutral.
func experienceModifier(claimsScore int) decimal.Decimal {
	switch {
	case claimsScore <= 10:
		return decimal.RequireFromString("0.75")
	case claimsScore <= 25:
		return decimal.RequireFromString("0.85")
	case claimsScore <= 45:
		return decimal.RequireFromString("1.00")
	case claimsScore <= 60:
		return decimal.RequireFromString("1.15")
	case claimsScore <= 80:
		return decimal.RequireFromString("1.30")
	default:
		return decimal.RequireFromString("1.50")
	}
}

// deductibleCreditRate returns the credit fraction for a deductible tier
func deductibleCreditRate(deductible decimal.Decimal) decimal.Decimal {
	tier := func(limit int64) bool {
		return deductible.GreaterThanOrEqual(decimal.NewFromInt(limit))
	}

	switch {
	case tier(25_000):
		return decimal.RequireFromString("0.15")
	case tier(10_000):
		return decimal.RequireFromString("0.10")
	case tier(5_000):
		return decimal.RequireFromString("0.07")
	case tier(2_500):
		return decimal.RequireFromString("0.05")
	case tier(1_000):
		return decimal.RequireFromString("0.02")
	default:
		return decimal.Zero
	}
}
