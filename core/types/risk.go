// Package types - Risk assessment types
package types

import "fmt"

// RiskTier is the ordered underwriting classification derived from the
// weighted risk score. Ordering matters: Preferred < Standard <
// NonStandard < Decline.
type RiskTier int

const (
	TierPreferred RiskTier = iota
	TierStandard
	TierNonStandard
	TierDecline
)

// String returns the tier name
func (t RiskTier) String() string {
	switch t {
	case TierPreferred:
		return "preferred"
	case TierStandard:
		return "standard"
	case TierNonStandard:
		return "non_standard"
	case TierDecline:
		return "decline"
	}
	return "unknown"
}

// MarshalJSON encodes the tier as its name
func (t RiskTier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a tier from its name
func (t *RiskTier) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"preferred"`:
		*t = TierPreferred
	case `"standard"`:
		*t = TierStandard
	case `"non_standard"`:
		*t = TierNonStandard
	case `"decline"`:
		*t = TierDecline
	default:
		return fmt.Errorf("unknown risk tier %s", data)
	}
	return nil
}

// Impact is the qualitative label for a factor score
type Impact string

const (
	ImpactFavorable   Impact = "favorable"
	ImpactNeutral     Impact = "neutral"
	ImpactUnfavorable Impact = "unfavorable"
)

// ImpactOf maps a 0-100 factor score to its qualitative label
func ImpactOf(score int) Impact {
	switch {
	case score <= 30:
		return ImpactFavorable
	case score >= 60:
		return ImpactUnfavorable
	default:
		return ImpactNeutral
	}
}

// RiskFactorScore is one scored factor in an assessment
type RiskFactorScore struct {
	// Name identifies the factor
	Name string `json:"name"`

	// Score is the 0-100 sub-score, lower = lower risk
	Score int `json:"score"`

	// Weight is the factor's relative weight
	Weight int `json:"weight"`

	// Impact is the qualitative label derived from the score
	Impact Impact `json:"impact"`
}

// RiskAssessment is the full output of the risk assessor
type RiskAssessment struct {
	// Score is the overall 0-100 weighted risk score
	Score int `json:"score"`

	// Tier is the derived risk tier
	Tier RiskTier `json:"tier"`

	// Factors are the scored factors, in scoring order
	Factors []RiskFactorScore `json:"factors"`

	// Notes are advisory underwriting notes; they never affect the score
	Notes []string `json:"notes,omitempty"`
}
