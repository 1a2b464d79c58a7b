// Package eligibility provides the eligibility gate.
// The gate is independent of rate and risk and runs first, so ineligible
// requests never reach rate resolution.
package eligibility

import (
	"github.com/shopspring/decimal"

	"quote-engine/core/types"
)

var (
	payrollReferralThreshold = decimal.NewFromInt(10_000_000)
	glLimitWarningThreshold  = decimal.NewFromInt(2_000_000)
)

// Check evaluates the business rules for a request. Hard-stop failures
// are all collected, never short-circuited; warnings never block.
func Check(req *types.QuoteRequest) types.EligibilityResult {
	result := types.EligibilityResult{Eligible: true}

	if req.YearsInBusiness < 1 {
		result.Eligible = false
		result.Messages = append(result.Messages,
			"business must have at least 1 year of operating history")
	}

	if req.Product == types.ProductWorkersComp && req.EmployeeCount < 1 {
		result.Eligible = false
		result.Messages = append(result.Messages,
			"workers compensation requires at least one employee")
	}

	if req.AnnualPayroll.GreaterThan(payrollReferralThreshold) {
		result.Warnings = append(result.Warnings,
			"annual payroll exceeds $10,000,000; large account handling applies")
		result.ReferralReason = "payroll above automated underwriting threshold"
	}

	if req.BusinessType == types.BusinessConstruction && req.YearsInBusiness < 3 {
		result.Warnings = append(result.Warnings,
			"construction business with under 3 years of operating history")
	}

	if req.Product == types.ProductGeneralLiability &&
		req.CoverageLimit.GreaterThan(glLimitWarningThreshold) {
		result.Warnings = append(result.Warnings,
			"general liability limit above $2,000,000 requires supplemental review")
	}

	return result
}
