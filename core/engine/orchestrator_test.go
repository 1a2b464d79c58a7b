package engine

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"

	"quote-engine/core/quote"
	"quote-engine/core/rating"
	"quote-engine/core/types"
	"quote-engine/internal/errors"
)

var quoteIDPattern = regexp.MustCompile(`^QT-\d{8}-[0-9A-F]{8}$`)

func testOrchestrator(t *testing.T) (*Orchestrator, *quote.Store) {
	t.Helper()

	table := rating.NewTable([]types.RateEntry{
		{
			State:          "DEFAULT",
			Classification: "DEFAULT",
			Product:        types.ProductGeneralLiability,
			BaseRate:       decimal.RequireFromString("5.5000"),
			MinimumPremium: decimal.RequireFromString("500.00"),
			TaxRate:        decimal.RequireFromString("0.0300"),
			Active:         true,
		},
		{
			State:          "DEFAULT",
			Classification: "DEFAULT",
			Product:        types.ProductWorkersComp,
			BaseRate:       decimal.RequireFromString("2.5000"),
			MinimumPremium: decimal.RequireFromString("500.00"),
			TaxRate:        decimal.RequireFromString("0.0328"),
			Active:         true,
		},
	})
	resolver, err := rating.NewResolver(table)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	store := quote.NewStore()
	orch, err := NewOrchestrator(resolver, store)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	return orch, store
}

func glRequest() *types.QuoteRequest {
	return &types.QuoteRequest{
		BusinessName:    "Harbor Consulting LLC",
		TaxID:           "12-3456789",
		BusinessType:    types.BusinessOffice,
		State:           "CA",
		YearsInBusiness: 6,
		EmployeeCount:   12,
		AnnualRevenue:   decimal.NewFromInt(1_200_000),
		AnnualPayroll:   decimal.NewFromInt(900_000),
		Product:         types.ProductGeneralLiability,
		Classification:  "91580",
		CoverageLimit:   decimal.NewFromInt(1_000_000),
	}
}

func TestQuotedHappyPath(t *testing.T) {
	orch, store := testOrchestrator(t)

	record, err := orch.Quote(glRequest())
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if record.Status != types.StatusQuoted {
		t.Fatalf("expected quoted, got %s (%v)", record.Status, record.Messages)
	}
	if !quoteIDPattern.MatchString(record.ID) {
		t.Errorf("quote id %q does not match QT-YYYYMMDD-XXXXXXXX", record.ID)
	}
	if len(record.Messages) != 0 {
		t.Errorf("quoted record must carry no blocking messages, got %v", record.Messages)
	}
	if !record.ExpiresAt.After(record.IssuedAt) {
		t.Error("expiration must follow issuance")
	}
	if record.Premium.AnnualPremium.LessThanOrEqual(decimal.Zero) {
		t.Errorf("expected positive annual premium, got %s", record.Premium.AnnualPremium)
	}

	stored, err := store.GetByID(record.ID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.ID != record.ID {
		t.Error("stored record differs from returned record")
	}
}

func TestIdenticalInputsDistinctIDsEqualValues(t *testing.T) {
	orch, _ := testOrchestrator(t)

	first, err := orch.Quote(glRequest())
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	second, err := orch.Quote(glRequest())
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if first.ID == second.ID {
		t.Error("identical inputs must still produce distinct quote ids")
	}
	if !reflect.DeepEqual(first.Premium, second.Premium) {
		t.Error("premium breakdowns for identical inputs differ")
	}
	if !reflect.DeepEqual(first.Risk, second.Risk) {
		t.Error("risk assessments for identical inputs differ")
	}
}

func TestIneligibleDeclinedWithoutRating(t *testing.T) {
	orch, _ := testOrchestrator(t)

	req := glRequest()
	req.YearsInBusiness = 0

	record, err := orch.Quote(req)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if record.Status != types.StatusDeclined || record.Eligible {
		t.Fatalf("expected declined ineligible record, got %+v", record)
	}
	if len(record.Messages) == 0 {
		t.Error("declined record must carry at least one message")
	}
	if !record.Premium.AnnualPremium.Equal(decimal.Zero) {
		t.Errorf("ineligible decline must carry the zero breakdown, got %s", record.Premium.AnnualPremium)
	}
}

func TestNoRateDeclined(t *testing.T) {
	orch, _ := testOrchestrator(t)

	req := glRequest()
	req.Product = types.ProductCyber

	record, err := orch.Quote(req)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if record.Status != types.StatusDeclined {
		t.Fatalf("expected declined, got %s", record.Status)
	}
	if len(record.Messages) != 1 || record.Messages[0] != MsgNoRate {
		t.Errorf("expected no-rate message, got %v", record.Messages)
	}
}

func TestRiskDeclineDiscardsPremium(t *testing.T) {
	orch, _ := testOrchestrator(t)

	req := &types.QuoteRequest{
		BusinessName:    "Dusty Roads Freight",
		TaxID:           "55-1112223",
		BusinessType:    types.BusinessConstruction,
		State:           "TX",
		YearsInBusiness: 1,
		EmployeeCount:   600,
		AnnualRevenue:   decimal.NewFromInt(30_000_000),
		Product:         types.ProductGeneralLiability,
		Classification:  "91580",
		RiskFactors: []types.RiskFactor{
			{Code: "claims_history", Type: types.FactorClaims, Value: decimal.NewFromInt(90)},
		},
	}

	record, err := orch.Quote(req)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if record.Status != types.StatusDeclined {
		t.Fatalf("expected declined, got %s", record.Status)
	}
	if len(record.Messages) != 1 || record.Messages[0] != MsgRiskDecline {
		t.Errorf("expected risk decline message, got %v", record.Messages)
	}
	if record.Risk.Tier != types.TierDecline {
		t.Errorf("expected decline tier on the record, got %s", record.Risk.Tier)
	}
	if !record.Premium.AnnualPremium.Equal(decimal.Zero) {
		t.Error("risk decline must not carry a premium")
	}
}

func TestQuoteHistoryByTaxID(t *testing.T) {
	orch, _ := testOrchestrator(t)

	first, _ := orch.Quote(glRequest())
	second, _ := orch.Quote(glRequest())

	other := glRequest()
	other.TaxID = "98-7654321"
	_, _ = orch.Quote(other)

	history := orch.QuoteHistory("12-3456789")
	if len(history) != 2 {
		t.Fatalf("expected 2 records in history, got %d", len(history))
	}
	if history[0].ID != second.ID || history[1].ID != first.ID {
		t.Error("history must be most recent first")
	}
}

func TestInvalidInputRejected(t *testing.T) {
	orch, _ := testOrchestrator(t)

	req := glRequest()
	req.Deductible = decimal.NewFromInt(-100)

	_, err := orch.Quote(req)
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INPUT_ERROR, got %v", err)
	}
}

func TestConstructionRequiresCollaborators(t *testing.T) {
	if _, err := NewOrchestrator(nil, quote.NewStore()); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected CONFIG_ERROR for nil resolver, got %v", err)
	}

	table := rating.NewTable(nil)
	resolver, _ := rating.NewResolver(table)
	if _, err := NewOrchestrator(resolver, nil); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected CONFIG_ERROR for nil store, got %v", err)
	}
}
