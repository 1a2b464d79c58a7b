package premium

import (
	"testing"

	"github.com/shopspring/decimal"

	"quote-engine/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assessmentWith(tier types.RiskTier, claims int) types.RiskAssessment {
	return types.RiskAssessment{
		Tier: tier,
		Factors: []types.RiskFactorScore{
			{Name: "claims_history", Score: claims, Weight: 25},
		},
	}
}

func wcRate(base, minimum, tax string) types.RateEntry {
	return types.RateEntry{
		State:          "CA",
		Classification: "8810",
		Product:        types.ProductWorkersComp,
		BaseRate:       dec(base),
		MinimumPremium: dec(minimum),
		TaxRate:        dec(tax),
		Active:         true,
	}
}

func TestWorkersCompScenario(t *testing.T) {
	req := &types.QuoteRequest{
		Product:         types.ProductWorkersComp,
		YearsInBusiness: 3,
		AnnualPayroll:   decimal.NewFromInt(1_000_000),
	}
	rate := wcRate("2.5000", "500.00", "0.0328")

	breakdown := Calculate(req, assessmentWith(types.TierStandard, 40), rate)

	if !breakdown.BasePremium.Equal(dec("25000.00")) {
		t.Errorf("expected base premium 25000.00, got %s", breakdown.BasePremium)
	}
	// Standard tier and a neutral experience modifier record nothing
	if len(breakdown.Adjustments) != 0 {
		t.Errorf("expected no adjustments, got %d", len(breakdown.Adjustments))
	}
	if !breakdown.StateTax.Equal(dec("820.00")) {
		t.Errorf("expected state tax 820.00, got %s", breakdown.StateTax)
	}
	if !breakdown.PolicyFee.Equal(dec("250")) {
		t.Errorf("expected workers comp fee 250, got %s", breakdown.PolicyFee)
	}
	if !breakdown.AnnualPremium.Equal(dec("26070.00")) {
		t.Errorf("expected annual premium 26070.00, got %s", breakdown.AnnualPremium)
	}
	if !breakdown.MonthlyPremium.Equal(dec("2172.50")) {
		t.Errorf("expected monthly premium 2172.50, got %s", breakdown.MonthlyPremium)
	}
}

func TestMinimumPremiumFloor(t *testing.T) {
	req := &types.QuoteRequest{
		Product:       types.ProductGeneralLiability,
		AnnualRevenue: decimal.NewFromInt(50_000),
	}
	rate := types.RateEntry{
		Product:        types.ProductGeneralLiability,
		BaseRate:       dec("5.5000"),
		MinimumPremium: dec("500.00"),
		TaxRate:        dec("0.0300"),
	}

	breakdown := Calculate(req, assessmentWith(types.TierStandard, 40), rate)

	if !breakdown.BasePremium.Equal(dec("275.00")) {
		t.Errorf("expected base premium 275.00, got %s", breakdown.BasePremium)
	}
	if len(breakdown.Adjustments) != 1 || breakdown.Adjustments[0].Code != CodeMinimumPremium {
		t.Fatalf("expected single minimum premium adjustment, got %+v", breakdown.Adjustments)
	}
	if !breakdown.Adjustments[0].Amount.Equal(dec("225.00")) {
		t.Errorf("expected top-up of 225.00, got %s", breakdown.Adjustments[0].Amount)
	}
	if !breakdown.Subtotal.Equal(dec("500.00")) {
		t.Errorf("expected subtotal raised to exactly 500.00, got %s", breakdown.Subtotal)
	}
}

func TestPreferredTierDiscount(t *testing.T) {
	req := &types.QuoteRequest{
		Product:       types.ProductGeneralLiability,
		AnnualRevenue: decimal.NewFromInt(1_000_000),
	}
	rate := types.RateEntry{
		Product:        types.ProductGeneralLiability,
		BaseRate:       dec("5.5000"),
		MinimumPremium: dec("500.00"),
		TaxRate:        dec("0.0300"),
	}

	breakdown := Calculate(req, assessmentWith(types.TierPreferred, 40), rate)

	if !breakdown.BasePremium.Equal(dec("5500.00")) {
		t.Errorf("expected base premium 5500.00, got %s", breakdown.BasePremium)
	}
	if len(breakdown.Adjustments) != 1 {
		t.Fatalf("expected single tier adjustment, got %+v", breakdown.Adjustments)
	}
	adj := breakdown.Adjustments[0]
	if adj.Code != CodeTier || adj.Type != types.AdjustmentDiscount {
		t.Errorf("expected tier discount, got %+v", adj)
	}
	if !adj.Amount.Equal(dec("-825.00")) {
		t.Errorf("expected tier adjustment -825.00, got %s", adj.Amount)
	}
}

func TestPremiumMonotonicInTier(t *testing.T) {
	req := &types.QuoteRequest{
		Product:       types.ProductGeneralLiability,
		AnnualRevenue: decimal.NewFromInt(2_000_000),
	}
	rate := types.RateEntry{
		Product:        types.ProductGeneralLiability,
		BaseRate:       dec("5.5000"),
		MinimumPremium: dec("500.00"),
		TaxRate:        dec("0.0300"),
	}

	preferred := Calculate(req, assessmentWith(types.TierPreferred, 40), rate).AnnualPremium
	standard := Calculate(req, assessmentWith(types.TierStandard, 40), rate).AnnualPremium
	nonStandard := Calculate(req, assessmentWith(types.TierNonStandard, 40), rate).AnnualPremium

	if preferred.GreaterThan(standard) || standard.GreaterThan(nonStandard) {
		t.Errorf("premium not monotonic in tier: %s / %s / %s", preferred, standard, nonStandard)
	}
}

func TestDeductibleCreditComputedAfterFloor(t *testing.T) {
	req := &types.QuoteRequest{
		Product:       types.ProductGeneralLiability,
		AnnualRevenue: decimal.NewFromInt(50_000),
		Deductible:    decimal.NewFromInt(25_000),
	}
	rate := types.RateEntry{
		Product:        types.ProductGeneralLiability,
		BaseRate:       dec("5.5000"),
		MinimumPremium: dec("500.00"),
		TaxRate:        dec("0.0300"),
	}

	breakdown := Calculate(req, assessmentWith(types.TierStandard, 40), rate)

	// 15% of the post-floor 500.00, not of the raw 275.00 base
	var credit types.PremiumAdjustment
	for _, adj := range breakdown.Adjustments {
		if adj.Code == CodeDeductible {
			credit = adj
		}
	}
	if !credit.Amount.Equal(dec("-75.00")) {
		t.Errorf("expected deductible credit -75.00, got %s", credit.Amount)
	}
	if !breakdown.Subtotal.Equal(dec("425.00")) {
		t.Errorf("expected subtotal 425.00, got %s", breakdown.Subtotal)
	}
}

func TestAdjustmentOrderIsFixed(t *testing.T) {
	req := &types.QuoteRequest{
		Product:         types.ProductWorkersComp,
		YearsInBusiness: 6,
		AnnualPayroll:   decimal.NewFromInt(20_000),
		Deductible:      decimal.NewFromInt(5_000),
		RiskFactors: []types.RiskFactor{
			{Code: "safety_program", Type: types.FactorSafety, Value: decimal.NewFromInt(85)},
		},
	}
	rate := wcRate("2.5000", "1000.00", "0.0300")

	// Preferred tier with a low claims score triggers every adjustment
	breakdown := Calculate(req, assessmentWith(types.TierPreferred, 10), rate)

	want := []string{CodeTier, CodeExperienceMod, CodeLoyalty, CodeSafety, CodeMinimumPremium, CodeDeductible}
	if len(breakdown.Adjustments) != len(want) {
		t.Fatalf("expected %d adjustments, got %+v", len(want), breakdown.Adjustments)
	}
	for i, code := range want {
		if breakdown.Adjustments[i].Code != code {
			t.Errorf("position %d: expected %s, got %s", i, code, breakdown.Adjustments[i].Code)
		}
	}
}

func TestExperienceModification(t *testing.T) {
	req := &types.QuoteRequest{
		Product:         types.ProductWorkersComp,
		YearsInBusiness: 4,
		AnnualPayroll:   decimal.NewFromInt(1_000_000),
	}
	rate := wcRate("2.5000", "500.00", "0.0300")

	debit := Calculate(req, assessmentWith(types.TierStandard, 70), rate)
	found := false
	for _, adj := range debit.Adjustments {
		if adj.Code == CodeExperienceMod {
			found = true
			if adj.Type != types.AdjustmentDebit {
				t.Errorf("claims score 70 should be a debit, got %s", adj.Type)
			}
			// modifier 1.30 on a 25000.00 base
			if !adj.Amount.Equal(dec("7500.00")) {
				t.Errorf("expected exp mod debit 7500.00, got %s", adj.Amount)
			}
		}
	}
	if !found {
		t.Fatal("expected an experience modification adjustment")
	}

	// Short tenure suppresses the modifier entirely
	req.YearsInBusiness = 2
	short := Calculate(req, assessmentWith(types.TierStandard, 70), rate)
	for _, adj := range short.Adjustments {
		if adj.Code == CodeExperienceMod {
			t.Error("experience modification must require 3+ years of tenure")
		}
	}
}

func TestAnnualPremiumIdentity(t *testing.T) {
	req := &types.QuoteRequest{
		Product:         types.ProductCyber,
		YearsInBusiness: 7,
		EmployeeCount:   42,
		AnnualRevenue:   decimal.NewFromInt(3_456_789),
		Deductible:      decimal.NewFromInt(2_500),
	}
	rate := types.RateEntry{
		Product:        types.ProductCyber,
		BaseRate:       dec("4.1200"),
		MinimumPremium: dec("750.00"),
		TaxRate:        dec("0.0215"),
	}

	breakdown := Calculate(req, assessmentWith(types.TierNonStandard, 40), rate)

	sum := breakdown.Subtotal.Add(breakdown.StateTax).Add(breakdown.PolicyFee)
	if !breakdown.AnnualPremium.Equal(sum) {
		t.Errorf("annual premium %s != subtotal+tax+fee %s", breakdown.AnnualPremium, sum)
	}
	if !breakdown.MonthlyPremium.Equal(breakdown.AnnualPremium.Div(decimal.NewFromInt(12)).Round(2)) {
		t.Errorf("monthly premium %s is not annual/12 rounded", breakdown.MonthlyPremium)
	}

	sumAdj := decimal.Zero
	for _, adj := range breakdown.Adjustments {
		sumAdj = sumAdj.Add(adj.Amount)
	}
	if !breakdown.TotalAdjustments.Equal(sumAdj.Round(2)) {
		t.Errorf("total adjustments %s != sum of amounts %s", breakdown.TotalAdjustments, sumAdj)
	}
}

func TestUnknownProductFallsBackToRevenueFormula(t *testing.T) {
	req := &types.QuoteRequest{
		Product:       types.ProductType("inland_marine"),
		AnnualRevenue: decimal.NewFromInt(1_000_000),
	}
	rate := types.RateEntry{
		Product:        req.Product,
		BaseRate:       dec("5.5000"),
		MinimumPremium: dec("500.00"),
		TaxRate:        dec("0.0300"),
	}

	breakdown := Calculate(req, assessmentWith(types.TierStandard, 40), rate)
	if !breakdown.BasePremium.Equal(dec("5500.00")) {
		t.Errorf("expected general liability fallback base 5500.00, got %s", breakdown.BasePremium)
	}
	if !breakdown.PolicyFee.Equal(dec("150")) {
		t.Errorf("expected fallback fee 150, got %s", breakdown.PolicyFee)
	}
}
