// Package types - Quote record types
package types

import "time"

// QuoteStatus is the lifecycle status of a quote record.
// The quoting pipeline only produces Quoted and Declined; the remaining
// statuses are set by collaborators that consume records afterwards.
type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "draft"
	StatusQuoted   QuoteStatus = "quoted"
	StatusReferred QuoteStatus = "referred"
	StatusDeclined QuoteStatus = "declined"
	StatusExpired  QuoteStatus = "expired"
	StatusBound    QuoteStatus = "bound"
)

// EligibilityResult is the output of the eligibility gate
type EligibilityResult struct {
	// Eligible is false when any blocking rule failed
	Eligible bool `json:"eligible"`

	// Messages are the blocking failures; non-empty means ineligible
	Messages []string `json:"messages,omitempty"`

	// Warnings are non-blocking advisories
	Warnings []string `json:"warnings,omitempty"`

	// ReferralReason is set when the request should be referred for review
	ReferralReason string `json:"referral_reason,omitempty"`
}

// QuoteRecord is the persisted outcome of one quoting pipeline run.
// Records are immutable after creation; only the external retention
// collaborator may move a Quoted record to Expired.
type QuoteRecord struct {
	// ID is the quote identifier, format QT-YYYYMMDD-XXXXXXXX
	ID string `json:"id"`

	// Status is the terminal pipeline status
	Status QuoteStatus `json:"status"`

	// IssuedAt is when the quote was produced
	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt is when the quote lapses
	ExpiresAt time.Time `json:"expires_at"`

	// Request echoes the quoted request
	Request QuoteRequest `json:"request"`

	// Premium is the itemized premium (zero-valued for declined quotes)
	Premium PremiumBreakdown `json:"premium"`

	// Risk is the risk assessment (zero-valued when not reached)
	Risk RiskAssessment `json:"risk"`

	// Eligible is the eligibility gate outcome
	Eligible bool `json:"eligible"`

	// Messages are the blocking messages for a declined quote
	Messages []string `json:"messages,omitempty"`

	// Warnings are non-blocking advisories carried onto the quote
	Warnings []string `json:"warnings,omitempty"`

	// ReferralReason is the referral advisory, if any
	ReferralReason string `json:"referral_reason,omitempty"`

	// ProcessingTime is how long the pipeline took
	ProcessingTime time.Duration `json:"processing_time_ns"`
}
