// Package engine - Quote orchestration
// The orchestrator sequences eligibility, rate resolution, risk
// assessment, and premium calculation, then persists the terminal record
// before returning it. The only states it produces are Quoted and
// Declined; Referred, Expired, and Bound belong to collaborators that
// consume records afterwards.
package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"quote-engine/core/eligibility"
	"quote-engine/core/premium"
	"quote-engine/core/quote"
	"quote-engine/core/rating"
	"quote-engine/core/risk"
	"quote-engine/core/types"
	"quote-engine/internal/errors"
)

// Decline messages for the non-eligibility decline paths
const (
	MsgNoRate      = "no rate available for the requested state, classification, and product"
	MsgRiskDecline = "risk assessment indicates decline"
)

// DefaultValidity is how long an issued quote remains open
const DefaultValidity = 30 * 24 * time.Hour

// Orchestrator runs the quoting pipeline
type Orchestrator struct {
	resolver *rating.Resolver
	store    *quote.Store
	validity time.Duration
	now      func() time.Time
}

// Option configures an orchestrator
type Option func(*Orchestrator)

// WithValidity overrides the quote validity window
func WithValidity(d time.Duration) Option {
	return func(o *Orchestrator) { o.validity = d }
}

// WithClock overrides the time source (tests)
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator creates an orchestrator. Missing collaborators are
// configuration errors and fail here, not per-request.
func NewOrchestrator(resolver *rating.Resolver, store *quote.Store, opts ...Option) (*Orchestrator, error) {
	if resolver == nil {
		return nil, errors.Config("orchestrator requires a rate resolver")
	}
	if store == nil {
		return nil, errors.Config("orchestrator requires a quote store")
	}

	o := &Orchestrator{
		resolver: resolver,
		store:    store,
		validity: DefaultValidity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Quote runs the full pipeline for a request and returns the stored
// record. Ineligibility, missing rates, and risk declines are Declined
// records, never errors; the returned error is reserved for contract
// violations (bad input, storage faults).
func (o *Orchestrator) Quote(req *types.QuoteRequest) (types.QuoteRecord, error) {
	if err := validate(req); err != nil {
		return types.QuoteRecord{}, err
	}

	start := o.now()

	gate := eligibility.Check(req)
	if !gate.Eligible {
		return o.finalize(req, types.QuoteRecord{
			Status:         types.StatusDeclined,
			Eligible:       false,
			Messages:       gate.Messages,
			Warnings:       gate.Warnings,
			ReferralReason: gate.ReferralReason,
		}, start)
	}

	rate, err := o.resolver.Resolve(req.State, req.Classification, req.Product)
	if err != nil {
		if !errors.IsType(err, errors.TypeNotFound) {
			return types.QuoteRecord{}, err
		}
		return o.finalize(req, types.QuoteRecord{
			Status:         types.StatusDeclined,
			Eligible:       true,
			Messages:       []string{MsgNoRate},
			Warnings:       gate.Warnings,
			ReferralReason: gate.ReferralReason,
		}, start)
	}

	assessment := risk.Assess(req)
	if assessment.Tier == types.TierDecline {
		return o.finalize(req, types.QuoteRecord{
			Status:         types.StatusDeclined,
			Eligible:       true,
			Risk:           assessment,
			Messages:       []string{MsgRiskDecline},
			Warnings:       gate.Warnings,
			ReferralReason: gate.ReferralReason,
		}, start)
	}

	breakdown := premium.Calculate(req, assessment, rate)

	return o.finalize(req, types.QuoteRecord{
		Status:         types.StatusQuoted,
		Eligible:       true,
		Premium:        breakdown,
		Risk:           assessment,
		Warnings:       gate.Warnings,
		ReferralReason: gate.ReferralReason,
	}, start)
}

// GetQuote returns a stored record by quote id
func (o *Orchestrator) GetQuote(id string) (types.QuoteRecord, error) {
	return o.store.GetByID(id)
}

// QuoteHistory returns all records for a tax id, most recent first
func (o *Orchestrator) QuoteHistory(taxID string) []types.QuoteRecord {
	return o.store.GetByTaxID(taxID)
}

// finalize stamps identity and timing onto the record and persists it
// before returning it to the caller.
func (o *Orchestrator) finalize(req *types.QuoteRequest, record types.QuoteRecord, start time.Time) (types.QuoteRecord, error) {
	issued := o.now()

	record.ID = newQuoteID(issued)
	record.IssuedAt = issued
	record.ExpiresAt = issued.Add(o.validity)
	record.Request = *req
	record.ProcessingTime = issued.Sub(start)

	if err := o.store.Put(record); err != nil {
		return types.QuoteRecord{}, err
	}
	return record, nil
}

// newQuoteID builds a QT-YYYYMMDD-XXXXXXXX identifier. The suffix comes
// from a random UUID, so collisions are overwhelmingly improbable;
// callers treat the whole id as opaque.
func newQuoteID(issued time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return "QT-" + issued.UTC().Format("20060102") + "-" + suffix
}

// validate rejects requests that violate the input contract
func validate(req *types.QuoteRequest) error {
	if req == nil {
		return errors.Input("quote request is required")
	}
	if req.YearsInBusiness < 0 {
		return errors.Input("years in business cannot be negative")
	}
	if req.EmployeeCount < 0 {
		return errors.Input("employee count cannot be negative")
	}
	if req.CoverageLimit.IsNegative() {
		return errors.Input("coverage limit cannot be negative")
	}
	if req.Deductible.IsNegative() {
		return errors.Input("deductible cannot be negative")
	}
	return nil
}
