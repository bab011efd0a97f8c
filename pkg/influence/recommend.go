package influence

import (
	"fmt"
	"math"

	"github.com/metasystem/steering/pkg/cyber"
)

const (
	// DefaultTop is the number of recommendations (primary included) produced
	// when no explicit count is given.
	DefaultTop = 5

	// LowCertaintyThreshold is the primary confidence below which a warning
	// is raised.
	LowCertaintyThreshold = 0.5
	// LowPowerThreshold is the available power of the top node below which
	// a warning is raised.
	LowPowerThreshold = 1.0
)

// Warnings attached to a recommendation set.
const (
	WarnIsolated      = "no influence paths lead to the target object"
	WarnLowCertainty  = "low relation certainty: the recommendation needs verification"
	WarnLowPower      = "the object has little available power: its influence may be limited"
	isolatedName      = "no recommendation"
	isolatedAction    = "no actions available"
	isolatedRationale = "the object is isolated in the relation graph"
)

// Recommendation is a suggested steering action on one influencer.
type Recommendation struct {
	ObjectID       string  `json:"object_id"`
	ObjectName     string  `json:"object_name"`
	Action         string  `json:"action"`
	Rationale      string  `json:"rationale"`
	ExpectedImpact float64 `json:"expected_impact"`
	Confidence     float64 `json:"confidence"`
}

// Recommendations is the primary action, its alternatives and any warnings.
type Recommendations struct {
	Primary      Recommendation   `json:"primary"`
	Alternatives []Recommendation `json:"alternatives"`
	Warnings     []string         `json:"warnings"`
}

// Recommend turns ranked nodes into recommendations. The first node becomes
// the primary recommendation and up to top-1 following nodes become
// alternatives. A non-positive top means DefaultTop.
func Recommend(ranked []Node, goal cyber.SteeringGoal, top int) Recommendations {
	if top <= 0 {
		top = DefaultTop
	}

	if len(ranked) == 0 {
		return Recommendations{
			Primary: Recommendation{
				ObjectName: isolatedName,
				Action:     isolatedAction,
				Rationale:  isolatedRationale,
			},
			Alternatives: []Recommendation{},
			Warnings:     []string{WarnIsolated},
		}
	}

	recs := Recommendations{
		Primary:      recommendation(ranked[0], goal),
		Alternatives: []Recommendation{},
		Warnings:     []string{},
	}
	for _, n := range ranked[1:min(top, len(ranked))] {
		recs.Alternatives = append(recs.Alternatives, recommendation(n, goal))
	}

	if recs.Primary.Confidence < LowCertaintyThreshold {
		recs.Warnings = append(recs.Warnings, WarnLowCertainty)
	}
	if ranked[0].AvailablePower < LowPowerThreshold {
		recs.Warnings = append(recs.Warnings, WarnLowPower)
	}
	return recs
}

func recommendation(n Node, goal cyber.SteeringGoal) Recommendation {
	return Recommendation{
		ObjectID:       n.ObjectID,
		ObjectName:     n.ObjectName,
		Action:         fmt.Sprintf("%s %q", goal.Verb(), n.ObjectName),
		Rationale:      Rationale(n),
		ExpectedImpact: math.Min(n.InfluenceStrength*n.FeedbackMultiplier, 1),
		Confidence:     n.CertaintyScore,
	}
}

// FeedbackKind describes the net feedback of a multiplier.
func FeedbackKind(multiplier float64) string {
	switch {
	case multiplier > 1:
		return "positive (reinforcing) feedback"
	case multiplier < 1:
		return "negative (dampening) feedback"
	default:
		return "no feedback"
	}
}

// Rationale explains a node's score in one sentence pair.
func Rationale(n Node) string {
	return fmt.Sprintf(
		"The object exerts %s through %d influence paths. Control leverage: %.2f (power: %.2f, influence: %.2f, certainty: %.2f).",
		FeedbackKind(n.FeedbackMultiplier), n.PathCount, n.ControlLeverage,
		n.AvailablePower, n.InfluenceStrength, n.CertaintyScore,
	)
}
