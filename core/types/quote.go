// Package types - Quote request types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType identifies a commercial insurance product line
type ProductType string

const (
	ProductWorkersComp           ProductType = "workers_comp"
	ProductGeneralLiability      ProductType = "general_liability"
	ProductBusinessOwners        ProductType = "business_owners"
	ProductCommercialAuto        ProductType = "commercial_auto"
	ProductProfessionalLiability ProductType = "professional_liability"
	ProductCyber                 ProductType = "cyber"
)

// String returns the string representation
func (p ProductType) String() string {
	return string(p)
}

// BusinessType identifies the applicant's industry segment
type BusinessType string

const (
	BusinessOffice               BusinessType = "office"
	BusinessRetail               BusinessType = "retail"
	BusinessRestaurant           BusinessType = "restaurant"
	BusinessConstruction         BusinessType = "construction"
	BusinessManufacturing        BusinessType = "manufacturing"
	BusinessTechnology           BusinessType = "technology"
	BusinessHealthcare           BusinessType = "healthcare"
	BusinessTransportation       BusinessType = "transportation"
	BusinessWholesale            BusinessType = "wholesale"
	BusinessRealEstate           BusinessType = "real_estate"
	BusinessProfessionalServices BusinessType = "professional_services"
	BusinessOther                BusinessType = "other"
)

// String returns the string representation
func (b BusinessType) String() string {
	return string(b)
}

// RiskFactorType categorizes a caller-supplied risk factor
type RiskFactorType string

const (
	FactorClaims RiskFactorType = "claims"
	FactorSafety RiskFactorType = "safety"
	FactorOther  RiskFactorType = "other"
)

// RiskFactor is an optional caller-supplied risk signal.
// Value is on a 0-100 scale unless the factor code says otherwise.
type RiskFactor struct {
	// Code identifies the factor (e.g. "claims_history", "safety_program")
	Code string `json:"code"`

	// Type is the factor category
	Type RiskFactorType `json:"type"`

	// Value is the factor value, 0-100
	Value decimal.Decimal `json:"value"`
}

// QuoteRequest is the full input to the quoting pipeline
type QuoteRequest struct {
	// BusinessName is the legal name of the applicant
	BusinessName string `json:"business_name"`

	// TaxID is the business tax identifier
	TaxID string `json:"tax_id"`

	// BusinessType is the applicant's industry segment
	BusinessType BusinessType `json:"business_type"`

	// State is the two-letter state code
	State string `json:"state"`

	// YearsInBusiness is the applicant's operating tenure
	YearsInBusiness int `json:"years_in_business"`

	// EmployeeCount is the number of employees
	EmployeeCount int `json:"employee_count"`

	// AnnualRevenue is gross annual revenue
	AnnualRevenue decimal.Decimal `json:"annual_revenue"`

	// AnnualPayroll is gross annual payroll
	AnnualPayroll decimal.Decimal `json:"annual_payroll"`

	// Product is the requested product line
	Product ProductType `json:"product"`

	// Classification is the industry classification code
	Classification string `json:"classification"`

	// CoverageLimit is the requested coverage limit
	CoverageLimit decimal.Decimal `json:"coverage_limit"`

	// Deductible is the selected deductible
	Deductible decimal.Decimal `json:"deductible"`

	// EffectiveDate is the requested policy start date
	EffectiveDate *time.Time `json:"effective_date,omitempty"`

	// RiskFactors are optional caller-supplied risk signals, in order
	RiskFactors []RiskFactor `json:"risk_factors,omitempty"`
}

// Factor returns the first risk factor of the given type, if present
func (r *QuoteRequest) Factor(t RiskFactorType) (RiskFactor, bool) {
	for _, f := range r.RiskFactors {
		if f.Type == t {
			return f, true
		}
	}
	return RiskFactor{}, false
}
