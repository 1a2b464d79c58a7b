// Package types - Premium breakdown types
package types

import "github.com/shopspring/decimal"

// AdjustmentType categorizes a premium adjustment
type AdjustmentType string

const (
	AdjustmentDiscount  AdjustmentType = "discount"
	AdjustmentSurcharge AdjustmentType = "surcharge"
	AdjustmentCredit    AdjustmentType = "credit"
	AdjustmentDebit     AdjustmentType = "debit"
)

// PremiumAdjustment is one applied adjustment line.
// The output list preserves application order; downstream consumers
// display adjustments in sequence.
type PremiumAdjustment struct {
	// Code identifies the adjustment
	Code string `json:"code"`

	// Description is the human-readable explanation
	Description string `json:"description"`

	// Type is the adjustment category
	Type AdjustmentType `json:"type"`

	// Factor is the signed fraction applied (zero for flat amounts)
	Factor decimal.Decimal `json:"factor"`

	// Amount is the signed currency amount, 2 fractional digits
	Amount decimal.Decimal `json:"amount"`
}

// PremiumBreakdown is the fully itemized premium
type PremiumBreakdown struct {
	// BasePremium is the pre-adjustment premium
	BasePremium decimal.Decimal `json:"base_premium"`

	// Adjustments are the applied adjustments in application order
	Adjustments []PremiumAdjustment `json:"adjustments,omitempty"`

	// TotalAdjustments is the sum of all adjustment amounts
	TotalAdjustments decimal.Decimal `json:"total_adjustments"`

	// Subtotal is base + adjustments, floored at the minimum premium
	Subtotal decimal.Decimal `json:"subtotal"`

	// StateTax is the premium tax on the subtotal
	StateTax decimal.Decimal `json:"state_tax"`

	// PolicyFee is the flat per-product policy fee
	PolicyFee decimal.Decimal `json:"policy_fee"`

	// AnnualPremium is subtotal + tax + fee
	AnnualPremium decimal.Decimal `json:"annual_premium"`

	// MonthlyPremium is annual / 12, rounded
	MonthlyPremium decimal.Decimal `json:"monthly_premium"`

	// MinimumPremium is the floor used during calculation
	MinimumPremium decimal.Decimal `json:"minimum_premium"`
}
